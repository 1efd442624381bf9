package service

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameExists       = errors.New("game already exists")
	ErrNotComputerTurn  = errors.New("not the computer's turn")
	ErrInvalidGameMode  = errors.New("invalid game mode")
	ErrInvalidColor     = errors.New("invalid color")
	ErrConnectionClosed = errors.New("connection closed")
)
