package avianca

import (
	"flight_tracker/internal/domain"
)

// Normalize maps a raw API record to the compact status shape.
func Normalize(raw FlightStatusResponse) domain.StatusUpdate {
	return domain.StatusUpdate{
		FlightNumber: domain.ExtractFlightNumber(raw.FlightNumber),
		Date:         raw.Date,
		From:         raw.From,
		To:           raw.To,
		Status:       domain.Status(raw.Status),
		ETD:          raw.EstimatedTimeDeparture,
		ATD:          raw.ConfirmedTimeDeparture,
	}
}

func normalizeAll(raws []FlightStatusResponse) []domain.StatusUpdate {
	updates := make([]domain.StatusUpdate, 0, len(raws))
	for _, raw := range raws {
		updates = append(updates, Normalize(raw))
	}
	return updates
}
