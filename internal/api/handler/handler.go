package handler

import (
	"duetchat/backend/internal/chathub"
	"duetchat/backend/internal/media"
	"duetchat/backend/internal/storage"
)

// Handler carries the dependencies shared by the HTTP endpoints.
type Handler struct {
	Hub       *chathub.Hub
	Store     storage.Store
	Files     media.FileStore
	JWTSecret []byte
}

func NewHandler(hub *chathub.Hub, store storage.Store, files media.FileStore, jwtSecret []byte) *Handler {
	return &Handler{
		Hub:       hub,
		Store:     store,
		Files:     files,
		JWTSecret: jwtSecret,
	}
}
