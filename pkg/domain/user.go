package domain

import "github.com/google/uuid"

// UserID identifies the API caller, taken from the JWT subject.
type UserID uuid.UUID
