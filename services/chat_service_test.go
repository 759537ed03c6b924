package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/utils"
)

func newChatFixture(t *testing.T) (*ChatService, *matchFixture, string) {
	t.Helper()
	f := newMatchFixture(t)
	chat := &ChatService{Matches: f.svc, Threads: f.threads}

	result, err := f.svc.RecordSwipe(context.Background(), "alice", "bob", models.DecisionLike)
	require.NoError(t, err)
	return chat, f, result.Match.ID
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	status, _ := utils.StatusFor(err)
	assert.Equal(t, want, status)
}

func TestAppendMessageText(t *testing.T) {
	chat, f, threadID := newChatFixture(t)
	ctx := context.Background()

	view, message, err := chat.AppendMessage(ctx, threadID, "alice", MessageInput{Text: "  hey there  "})
	require.NoError(t, err)

	assert.Equal(t, "hey there", message.Text)
	assert.Equal(t, "alice", message.SenderID)
	require.Len(t, view.Conversation, 1)
	assert.Equal(t, message.ID, view.Conversation[0].ID)

	stored, err := f.threads.GetByID(ctx, threadID)
	require.NoError(t, err)
	assert.Len(t, stored.Conversation, 1)
}

func TestAppendMessageEmptyRejected(t *testing.T) {
	chat, f, threadID := newChatFixture(t)
	ctx := context.Background()

	_, _, err := chat.AppendMessage(ctx, threadID, "alice", MessageInput{Text: "   "})
	assertStatus(t, err, http.StatusBadRequest)

	// Thread untouched.
	stored, err := f.threads.GetByID(ctx, threadID)
	require.NoError(t, err)
	assert.Empty(t, stored.Conversation)
}

func TestAppendMessageNonMemberForbidden(t *testing.T) {
	chat, f, threadID := newChatFixture(t)
	ctx := context.Background()

	_, _, err := chat.AppendMessage(ctx, threadID, "carol", MessageInput{Text: "hi"})
	assertStatus(t, err, http.StatusForbidden)

	stored, err := f.threads.GetByID(ctx, threadID)
	require.NoError(t, err)
	assert.Empty(t, stored.Conversation)
}

func TestAppendMessageUnknownThread(t *testing.T) {
	chat, _, _ := newChatFixture(t)

	_, _, err := chat.AppendMessage(context.Background(), "no-such-thread", "alice", MessageInput{Text: "hi"})
	assertStatus(t, err, http.StatusNotFound)
}

func TestAppendMessageVoiceNote(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	waveform := make([]float64, 200)
	_, message, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		VoiceNote: &VoiceNoteInput{
			Data:     "data:audio/webm;base64,AAAA",
			Duration: 3.6,
			Waveform: waveform,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, message.VoiceNote)
	assert.Equal(t, "audio/webm", message.VoiceNote.MimeType)
	assert.Equal(t, 4, message.VoiceNote.Duration)
	assert.Len(t, message.VoiceNote.Waveform, models.MaxWaveformPoints)
}

func TestAppendMessageRejectsNonAudioVoicePayload(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	// A voice note without an audio data URL does not count as content.
	_, _, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		VoiceNote: &VoiceNoteInput{DataURL: "data:video/mp4;base64,AAAA"},
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAppendMessageImageAttachment(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	_, message, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		Attachments: []AttachmentInput{{
			DataURL: "data:image/png;base64,AAAABBBB",
			Name:    " sunset.png ",
			Width:   640,
			Height:  480,
		}},
	})
	require.NoError(t, err)
	require.Len(t, message.Attachments, 1)

	att := message.Attachments[0]
	assert.Equal(t, models.AttachmentImage, att.Kind)
	assert.Equal(t, "image/*", att.MimeType)
	assert.Equal(t, "sunset.png", att.Name)
	assert.Equal(t, 640, att.Width)
	assert.Equal(t, 6, att.Size) // 8 base64 chars -> 6 bytes
}

func TestAppendMessageUnsupportedAttachmentRejected(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	_, _, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		Attachments: []AttachmentInput{{DataURL: "data:video/mp4;base64,AAAA"}},
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAppendMessageTooManyAttachments(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	attachments := make([]AttachmentInput, models.MaxAttachments+1)
	for i := range attachments {
		attachments[i] = AttachmentInput{DataURL: "data:image/png;base64,AAAA"}
	}
	_, _, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		Attachments: attachments,
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAppendMessageDocumentByExtension(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	_, message, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		Attachments: []AttachmentInput{{
			DataURL: "data:application/pdf;base64,AAAA",
			Name:    "cv.pdf",
		}},
	})
	require.NoError(t, err)
	require.Len(t, message.Attachments, 1)
	assert.Equal(t, models.AttachmentDocument, message.Attachments[0].Kind)
	assert.Equal(t, "application/pdf", message.Attachments[0].MimeType)
}

func TestAppendMessageLocationAttachment(t *testing.T) {
	chat, _, threadID := newChatFixture(t)
	lat, lng := -1.2921, 36.8219

	_, message, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		Attachments: []AttachmentInput{{
			Kind:  "location",
			Lat:   &lat,
			Lng:   &lng,
			Label: " Nairobi ",
		}},
	})
	require.NoError(t, err)
	require.Len(t, message.Attachments, 1)

	att := message.Attachments[0]
	assert.Equal(t, models.AttachmentLocation, att.Kind)
	assert.Equal(t, lat, att.Lat)
	assert.Equal(t, "Nairobi", att.Label)
}

func TestAppendMessageLocationWithoutCoordinates(t *testing.T) {
	chat, _, threadID := newChatFixture(t)

	_, _, err := chat.AppendMessage(context.Background(), threadID, "alice", MessageInput{
		Attachments: []AttachmentInput{{Kind: "location"}},
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAppendMessageUpdatesThreadActivity(t *testing.T) {
	chat, f, threadID := newChatFixture(t)
	ctx := context.Background()

	before, err := f.threads.GetByID(ctx, threadID)
	require.NoError(t, err)

	f.svc.Now = fixedClock(testNow.Add(time.Hour))
	_, _, err = chat.AppendMessage(ctx, threadID, "bob", MessageInput{Text: "hello"})
	require.NoError(t, err)

	after, err := f.threads.GetByID(ctx, threadID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestEstimateBase64Size(t *testing.T) {
	assert.Equal(t, 0, estimateBase64Size("not-a-data-url"))
	assert.Equal(t, 0, estimateBase64Size("data:image/png;base64"))
	assert.Equal(t, 3, estimateBase64Size("data:image/png;base64,AAAA"))
	assert.Equal(t, 3, estimateBase64Size("data:image/png;base64, AA AA "))
	assert.Equal(t, 6, estimateBase64Size("data:image/png;base64,"+strings.Repeat("A", 8)))
}
