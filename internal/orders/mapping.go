package orders

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/prescriptions"
	"github.com/acuity-lab/acuity/pkg/repository"
)

func scanOrder(s repository.Scanner) (Order, error) {
	var o Order
	err := s.Scan(
		&o.ID,
		&o.Reference,
		&o.TenantID,
		&o.Status,
		&o.RxVersion,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

func scanID(s repository.Scanner) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.Scan(&id)
	return id, err
}

type storedRxRow struct {
	rx       prescriptions.Prescription
	hasPrism bool
}

func scanPrescription(s repository.Scanner) (storedRxRow, error) {
	var row storedRxRow
	var odSphere, odCylinder, odAxis, odAdd sql.NullFloat64
	var osSphere, osCylinder, osAxis, osAdd sql.NullFloat64
	var pd sql.NullFloat64

	err := s.Scan(
		&odSphere, &odCylinder, &odAxis, &odAdd,
		&osSphere, &osCylinder, &osAxis, &osAdd,
		&pd, &row.hasPrism,
	)
	if err != nil {
		return row, err
	}

	row.rx = prescriptions.Prescription{
		OD: prescriptions.EyeRx{
			Sphere:   nullable(odSphere),
			Cylinder: nullable(odCylinder),
			Axis:     nullable(odAxis),
			Add:      nullable(odAdd),
		},
		OS: prescriptions.EyeRx{
			Sphere:   nullable(osSphere),
			Cylinder: nullable(osCylinder),
			Axis:     nullable(osAxis),
			Add:      nullable(osAdd),
		},
		PD: nullable(pd),
	}
	return row, nil
}

func scanTracing(s repository.Scanner) (Tracing, error) {
	var t Tracing
	var extractedRaw []byte

	err := s.Scan(
		&t.Geometry.WrapFrame,
		&t.Geometry.BMeasurementMm,
		&t.Geometry.BaseCurve,
		&t.Geometry.PointCount,
		&t.Geometry.Quality,
		&extractedRaw,
	)
	if err != nil {
		return t, err
	}

	if !t.Geometry.Quality.Valid() {
		return t, fmt.Errorf("%w: unknown tracing quality %q", ErrMalformed, t.Geometry.Quality)
	}

	if len(extractedRaw) > 0 {
		if err := json.Unmarshal(extractedRaw, &t.ExtractedRx); err != nil {
			return t, fmt.Errorf("%w: extracted_rx: %v", ErrMalformed, err)
		}
	}

	return t, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
