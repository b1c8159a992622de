package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamCommuteRequest = "stream:commute:request"
	StreamCommuteDone    = "stream:commute:done"
)

// CommuteRequestEvent - входящее событие на построение отчёта
type CommuteRequestEvent struct {
	RequestID          uuid.UUID `json:"request_id"`
	OriginPostcode     string    `json:"origin_postcode"`
	DestinationAddress string    `json:"destination_address"`
}

// Normalize убирает пробелы по краям адресных полей
func (e *CommuteRequestEvent) Normalize() {
	e.OriginPostcode = strings.TrimSpace(e.OriginPostcode)
	e.DestinationAddress = strings.TrimSpace(e.DestinationAddress)
}

// Validate проверяет, что событие можно обработать
func (e *CommuteRequestEvent) Validate() error {
	if e.RequestID == uuid.Nil {
		return errors.New("request_id is required")
	}
	if strings.TrimSpace(e.OriginPostcode) == "" {
		return errors.New("origin_postcode is required")
	}
	if strings.TrimSpace(e.DestinationAddress) == "" {
		return errors.New("destination_address is required")
	}
	return nil
}

// CommuteDoneEvent - результат построения отчёта
type CommuteDoneEvent struct {
	RequestID uuid.UUID      `json:"request_id"`
	ReportID  *uuid.UUID     `json:"report_id,omitempty"`
	Report    *CommuteReport `json:"report,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
