package api

import (
	"net/http"

	"github.com/google/uuid"
)

type chatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	conversationID := uuid.Nil
	if req.ConversationID != "" {
		parsed, err := uuid.Parse(req.ConversationID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid conversation_id")
			return
		}
		conversationID = parsed
	}

	reply := h.assistant.Ask(r.Context(), conversationID, req.Message)
	replyText := reply.Text
	if reply.Degraded {
		replyText = h.localize(r, replyText)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"conversation_id": reply.ConversationID,
		"reply":           replyText,
		"degraded":        reply.Degraded,
		"history":         h.assistant.History(reply.ConversationID),
	})
}
