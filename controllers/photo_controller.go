package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/utils"
)

// PhotoController hands out presigned S3 URLs for profile photos.
type PhotoController struct {
	Photos *services.PhotoService
}

func NewPhotoController(photos *services.PhotoService) *PhotoController {
	return &PhotoController{Photos: photos}
}

// UploadURL handles POST /api/photos/upload-url
func (pc *PhotoController) UploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request payload"))
		return
	}
	if request.FileName == "" || request.FileType == "" {
		utils.WriteError(w, utils.BadRequest("fileName and fileType are required"))
		return
	}

	url, key, err := pc.Photos.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"uploadUrl": url,
		"key":       key,
	})
}

// ReadURL handles GET /api/photos/read-url?key=...
func (pc *PhotoController) ReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		utils.WriteError(w, utils.BadRequest("key is required"))
		return
	}

	url, err := pc.Photos.GenerateReadURL(r.Context(), key)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"url": url})
}
