package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/store"
	"github.com/Weruh/kujuana/utils"
)

// ChatService appends messages to match-thread conversations. It
// shares the match service's clock so thread activity timestamps agree.
type ChatService struct {
	Matches *MatchService
	Threads store.ThreadStore
}

// MessageInput is the raw composer payload. Attachments and voice
// notes arrive as data URLs; older clients use dataUri or data for the
// same field.
type MessageInput struct {
	Text        string            `json:"text"`
	VoiceNote   *VoiceNoteInput   `json:"voiceNote"`
	Attachments []AttachmentInput `json:"attachments"`
}

type VoiceNoteInput struct {
	ID       string    `json:"id"`
	DataURL  string    `json:"dataUrl"`
	DataURI  string    `json:"dataUri"`
	Data     string    `json:"data"`
	MimeType string    `json:"mimeType"`
	Duration float64   `json:"duration"`
	Waveform []float64 `json:"waveform"`
}

type AttachmentInput struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	DataURL   string   `json:"dataUrl"`
	DataURI   string   `json:"dataUri"`
	Data      string   `json:"data"`
	MimeType  string   `json:"mimeType"`
	Name      string   `json:"name"`
	Size      float64  `json:"size"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Lat       *float64 `json:"lat"`
	Latitude  *float64 `json:"latitude"`
	Lng       *float64 `json:"lng"`
	Longitude *float64 `json:"longitude"`
	Label     string   `json:"label"`
	MapURL    string   `json:"mapUrl"`
	Accuracy  float64  `json:"accuracy"`
}

func (v *VoiceNoteInput) payload() string {
	if v.DataURL != "" {
		return v.DataURL
	}
	if v.DataURI != "" {
		return v.DataURI
	}
	return v.Data
}

func (a *AttachmentInput) payload() string {
	if a.DataURL != "" {
		return a.DataURL
	}
	if a.DataURI != "" {
		return a.DataURI
	}
	return a.Data
}

// AppendMessage validates and appends an immutable message to the
// thread's conversation. The sender must be a member; the message must
// carry at least one of trimmed text, a valid voice note, or a valid
// attachment. Thread updatedAt is bumped on success.
func (cs *ChatService) AppendMessage(ctx context.Context, threadID, senderID string, input MessageInput) (*models.ThreadView, *models.Message, error) {
	text := strings.TrimSpace(input.Text)

	hasVoiceNote := input.VoiceNote != nil && strings.HasPrefix(input.VoiceNote.payload(), "data:audio")

	attachments, err := sanitizeAttachments(input.Attachments)
	if err != nil {
		return nil, nil, err
	}

	if text == "" && !hasVoiceNote && len(attachments) == 0 {
		return nil, nil, utils.BadRequest("Add a message, a voice note, or at least one attachment before sending.")
	}

	if hasVoiceNote && estimateBase64Size(input.VoiceNote.payload()) > models.MaxVoiceNoteBytes {
		return nil, nil, utils.BadRequest("Voice notes must be smaller than 5MB.")
	}

	thread, err := cs.Matches.GetThread(ctx, threadID)
	if err != nil {
		return nil, nil, err
	}
	if !thread.HasMember(senderID) {
		return nil, nil, utils.Forbidden("You are not part of this match.")
	}

	now := cs.Matches.now()
	message := models.Message{
		ID:        "msg-" + uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		CreatedAt: now,
	}
	if len(attachments) > 0 {
		message.Attachments = attachments
	}
	if hasVoiceNote {
		message.VoiceNote = sanitizeVoiceNote(input.VoiceNote)
	}

	thread.Conversation = append(thread.Conversation, message)
	thread.UpdatedAt = now
	if err := cs.Threads.Put(ctx, *thread); err != nil {
		return nil, nil, fmt.Errorf("failed to store thread: %w", err)
	}

	view, err := cs.Matches.decorate(ctx, thread)
	if err != nil {
		return nil, nil, err
	}
	return view, &message, nil
}

func sanitizeVoiceNote(input *VoiceNoteInput) *models.VoiceNote {
	note := &models.VoiceNote{
		ID:       input.ID,
		DataURL:  input.payload(),
		MimeType: input.MimeType,
	}
	if note.ID == "" {
		note.ID = "voice-" + uuid.NewString()
	}
	if note.MimeType == "" {
		note.MimeType = "audio/webm"
	}
	if input.Duration > 0 {
		note.Duration = int(math.Round(input.Duration))
	}
	if len(input.Waveform) > 0 {
		waveform := input.Waveform
		if len(waveform) > models.MaxWaveformPoints {
			waveform = waveform[:models.MaxWaveformPoints]
		}
		note.Waveform = waveform
	}
	return note
}

// sanitizeAttachments applies the composer rules: at most six
// attachments, locations need coordinates, documents and images need a
// matching data URL under the size cap. Entries with no payload at all
// are silently dropped, mirroring the tolerant reference behavior.
func sanitizeAttachments(inputs []AttachmentInput) ([]models.Attachment, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if len(inputs) > models.MaxAttachments {
		return nil, utils.BadRequest(fmt.Sprintf("You can attach up to %d attachments per message.", models.MaxAttachments))
	}

	var out []models.Attachment
	for i := range inputs {
		in := &inputs[i]
		kind := strings.ToLower(in.Kind)

		lat, lng, hasCoordinates := coordinates(in)
		if kind == "" && hasCoordinates {
			kind = models.AttachmentLocation
		}

		if kind == models.AttachmentLocation {
			if !hasCoordinates {
				return nil, utils.BadRequest("Shared locations must include valid latitude and longitude.")
			}
			att := models.Attachment{
				ID:   in.ID,
				Kind: models.AttachmentLocation,
				Lat:  lat,
				Lng:  lng,
			}
			if att.ID == "" {
				att.ID = "location-" + uuid.NewString()
			}
			if label := strings.TrimSpace(in.Label); label != "" {
				att.Label = label
			}
			if strings.HasPrefix(in.MapURL, "http") {
				att.MapURL = in.MapURL
			}
			if in.Accuracy > 0 {
				att.Accuracy = int(math.Round(in.Accuracy))
			}
			out = append(out, att)
			continue
		}

		payload := in.payload()
		if payload == "" {
			continue
		}

		resolvedDocMime := resolveDocumentMimeType(in)
		isDocument := kind == models.AttachmentDocument || resolvedDocMime != ""

		if isDocument {
			if !isDocumentDataURL(payload) {
				return nil, utils.BadRequest("Only PDF, Word, Excel, PowerPoint, TXT, or RTF documents are supported.")
			}
			approxBytes := estimateBase64Size(payload)
			if approxBytes > models.MaxAttachmentBytes {
				return nil, utils.BadRequest("Attachments must be smaller than 5MB.")
			}
			att := models.Attachment{
				ID:       in.ID,
				Kind:     models.AttachmentDocument,
				DataURL:  payload,
				MimeType: resolvedDocMime,
			}
			if att.ID == "" {
				att.ID = "document-" + uuid.NewString()
			}
			if att.MimeType == "" {
				att.MimeType = "application/octet-stream"
			}
			if name := strings.TrimSpace(in.Name); name != "" {
				att.Name = name
			}
			att.Size = attachmentSize(in.Size, approxBytes)
			out = append(out, att)
			continue
		}

		if !strings.HasPrefix(payload, "data:image") {
			return nil, utils.BadRequest("Unsupported attachment type. Try sending images, documents, or locations.")
		}
		approxBytes := estimateBase64Size(payload)
		if approxBytes > models.MaxAttachmentBytes {
			return nil, utils.BadRequest("Attachments must be smaller than 5MB.")
		}

		att := models.Attachment{
			ID:       in.ID,
			Kind:     models.AttachmentImage,
			DataURL:  payload,
			MimeType: in.MimeType,
		}
		if att.ID == "" {
			att.ID = "attachment-" + uuid.NewString()
		}
		if att.MimeType == "" {
			att.MimeType = "image/*"
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			att.Name = name
		}
		att.Size = attachmentSize(in.Size, approxBytes)
		if in.Width > 0 {
			att.Width = int(math.Round(in.Width))
		}
		if in.Height > 0 {
			att.Height = int(math.Round(in.Height))
		}
		out = append(out, att)
	}
	return out, nil
}

func coordinates(in *AttachmentInput) (float64, float64, bool) {
	lat := in.Lat
	if lat == nil {
		lat = in.Latitude
	}
	lng := in.Lng
	if lng == nil {
		lng = in.Longitude
	}
	if lat == nil || lng == nil {
		return 0, 0, false
	}
	return *lat, *lng, true
}

func attachmentSize(declared float64, approx int) int {
	if declared > 0 {
		return int(math.Round(declared))
	}
	return approx
}

func isDocumentDataURL(payload string) bool {
	return strings.HasPrefix(payload, "data:application/") || strings.HasPrefix(payload, "data:text/")
}

func resolveDocumentMimeType(in *AttachmentInput) string {
	mime := strings.ToLower(strings.TrimSpace(in.MimeType))
	if models.DocumentMimeTypes[mime] {
		return mime
	}
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		if inferred, ok := models.DocumentExtensionMimes[name[idx+1:]]; ok {
			return inferred
		}
	}
	return ""
}

// estimateBase64Size approximates the decoded byte count of a data URL
// from its base64 tail.
func estimateBase64Size(dataURL string) int {
	if !strings.HasPrefix(dataURL, "data:") {
		return 0
	}
	_, base64Part, found := strings.Cut(dataURL, ",")
	if !found {
		return 0
	}
	cleaned := strings.Join(strings.Fields(base64Part), "")
	if cleaned == "" {
		return 0
	}
	return (len(cleaned)*3 + 3) / 4
}
