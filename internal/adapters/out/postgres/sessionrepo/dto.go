package sessionrepo

import (
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO is a data transfer object for an auth session in the database.
type SessionDTO struct {
	Token     string    `gorm:"type:varchar(64);primaryKey"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	Role      string    `gorm:"type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName overrides the table name for GORM.
func (SessionDTO) TableName() string {
	return "sessions"
}

func fromDomain(aggregate *session.Session) SessionDTO {
	return SessionDTO{
		Token:     aggregate.Token(),
		ActorID:   aggregate.ActorID().Bytes(),
		Role:      aggregate.Role().String(),
		ExpiresAt: aggregate.ExpiresAt(),
	}
}

func toDomain(dto SessionDTO) (*session.Session, error) {
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}
	role, err := kernel.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return session.RestoreSession(dto.Token, actorID, role, dto.ExpiresAt)
}
