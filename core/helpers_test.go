package core

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"jeewifi-backend/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func floatPtr(v float64) *float64 { return &v }

// seedPackage puts a one-hour catalog row into the store and returns it.
func seedPackage(store *MemoryStore) models.Package {
	pkg := models.Package{
		ID:              "pkg-1hr",
		Name:            "1 Hour",
		DurationMinutes: 60,
		DurationDisplay: "1 hour",
		Price:           20,
		Currency:        "KES",
		DeviceLimit:     1,
		IsActive:        true,
	}
	store.PutPackage(pkg)
	return pkg
}

func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
