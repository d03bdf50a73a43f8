package service

import (
	"strings"
	"time"

	"rpi_trader/internal/models"
)

// NormTF приводит разные записи таймфрейма к виду TwelveData.
func NormTF(raw string) (models.Timeframe, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "15m", "15min", "m15":
		return models.TF15m, true
	case "30m", "30min", "m30":
		return models.TF30m, true
	case "60m", "60min", "1h", "h1":
		return models.TF1h, true
	}
	return "", false
}

func timeframeToDuration(tf models.Timeframe) time.Duration {
	switch tf {
	case models.TF15m:
		return 15 * time.Minute
	case models.TF30m:
		return 30 * time.Minute
	case models.TF1h:
		return time.Hour
	default:
		return 0
	}
}

// parseDatetime: TwelveData отдаёт "2006-01-02 15:04:05" для внутридневных баров.
func parseDatetime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
