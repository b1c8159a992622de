package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedReport - сохранённый в архиве отчёт
type ArchivedReport struct {
	ID             uuid.UUID     `json:"id"`
	OriginPostcode string        `json:"origin_postcode"`
	Report         CommuteReport `json:"report"`
	CreatedAt      time.Time     `json:"created_at"`
}
