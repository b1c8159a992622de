package dto

import (
	"strings"
	"time"

	"github.com/commute-microservice/internal/domain"
	"github.com/google/uuid"
)

// CommuteReportRequest - запрос на построение отчёта о поездке
type CommuteReportRequest struct {
	OriginPostcode     string `json:"origin_postcode" query:"origin_postcode" validate:"required,notblank,max=16"`
	DestinationAddress string `json:"destination_address" query:"destination_address" validate:"required,notblank,max=256"`
}

// Normalize убирает пробелы по краям
func (r *CommuteReportRequest) Normalize() {
	r.OriginPostcode = strings.TrimSpace(r.OriginPostcode)
	r.DestinationAddress = strings.TrimSpace(r.DestinationAddress)
}

// CommuteReportResponse - ответ с отчётом.
// ID заполнен, только если отчёт сохранён в архив.
type CommuteReportResponse struct {
	ID        *uuid.UUID           `json:"id,omitempty"`
	CreatedAt *time.Time           `json:"created_at,omitempty"`
	Report    domain.CommuteReport `json:"report"`
}
