package errors

import "net/http"

// Ошибки построения отчёта. Фатальна только ErrOriginUnresolved,
// остальные поглощаются компонентами и превращаются в "unavailable" значения.
var (
	ErrOriginUnresolved = New(
		"ORIGIN_UNRESOLVED",
		"Unable to determine location for start postcode",
		http.StatusUnprocessableEntity,
	)

	ErrCommuteUnavailable = New(
		"COMMUTE_UNAVAILABLE",
		"Unable to determine commute time",
		http.StatusBadGateway,
	)

	ErrPoiQueryFailed = New(
		"POI_QUERY_FAILED",
		"Nearby place search failed",
		http.StatusBadGateway,
	)

	ErrDistanceUnavailable = New(
		"DISTANCE_UNAVAILABLE",
		"Walking distance could not be computed",
		http.StatusBadGateway,
	)
)

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrReportNotFound = New(
		"REPORT_NOT_FOUND",
		"Report not found",
		http.StatusNotFound,
	)

	ErrArchiveDisabled = New(
		"ARCHIVE_DISABLED",
		"Report archive is disabled",
		http.StatusNotImplemented,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
