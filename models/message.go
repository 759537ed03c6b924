package models

import "time"

// Attachment kinds accepted by the chat composer.
const (
	AttachmentImage    = "image"
	AttachmentDocument = "document"
	AttachmentLocation = "location"
)

// Limits on message payloads, matching what the mobile composer enforces.
const (
	MaxAttachments     = 6
	MaxAttachmentBytes = 5 * 1024 * 1024
	MaxVoiceNoteBytes  = 5 * 1024 * 1024
	MaxWaveformPoints  = 120
)

// Attachment is an inline media payload carried on a message. Image and
// document attachments embed a data URL; location attachments carry
// coordinates instead.
type Attachment struct {
	ID       string  `dynamodbav:"id" json:"id"`
	Kind     string  `dynamodbav:"kind" json:"kind"`
	DataURL  string  `dynamodbav:"dataUrl,omitempty" json:"dataUrl,omitempty"`
	MimeType string  `dynamodbav:"mimeType,omitempty" json:"mimeType,omitempty"`
	Name     string  `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Size     int     `dynamodbav:"size,omitempty" json:"size,omitempty"`
	Width    int     `dynamodbav:"width,omitempty" json:"width,omitempty"`
	Height   int     `dynamodbav:"height,omitempty" json:"height,omitempty"`
	Lat      float64 `dynamodbav:"lat,omitempty" json:"lat,omitempty"`
	Lng      float64 `dynamodbav:"lng,omitempty" json:"lng,omitempty"`
	Label    string  `dynamodbav:"label,omitempty" json:"label,omitempty"`
	MapURL   string  `dynamodbav:"mapUrl,omitempty" json:"mapUrl,omitempty"`
	Accuracy int     `dynamodbav:"accuracy,omitempty" json:"accuracy,omitempty"`
}

// VoiceNote is a recorded audio clip attached to a message.
type VoiceNote struct {
	ID       string    `dynamodbav:"id" json:"id"`
	DataURL  string    `dynamodbav:"dataUrl" json:"dataUrl"`
	MimeType string    `dynamodbav:"mimeType" json:"mimeType"`
	Duration int       `dynamodbav:"duration,omitempty" json:"duration,omitempty"`
	Waveform []float64 `dynamodbav:"waveform,omitempty" json:"waveform,omitempty"`
}

// Message is immutable once appended to a thread's conversation.
type Message struct {
	ID          string       `dynamodbav:"id" json:"id"`
	SenderID    string       `dynamodbav:"senderId" json:"senderId"`
	Text        string       `dynamodbav:"text,omitempty" json:"text,omitempty"`
	Attachments []Attachment `dynamodbav:"attachments,omitempty" json:"attachments,omitempty"`
	VoiceNote   *VoiceNote   `dynamodbav:"voiceNote,omitempty" json:"voiceNote,omitempty"`
	CreatedAt   time.Time    `dynamodbav:"createdAt" json:"createdAt"`
}

// DocumentMimeTypes are the document formats the composer accepts.
var DocumentMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain":      true,
	"application/rtf": true,
	"text/rtf":        true,
}

// DocumentExtensionMimes maps file extensions to document mime types
// for attachments whose declared mime type is missing or bogus.
var DocumentExtensionMimes = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt":  "text/plain",
	"rtf":  "application/rtf",
}
