package models

// CollisionSampleSize is the number of duplicate identifiers shown in diagnostics.
const CollisionSampleSize = 20

// Report summarizes a conversion run.
type Report struct {
	// Records is the number of distinct identifiers written.
	Records int
	// Collisions lists every identifier seen again after its first row, in encounter order.
	Collisions []string
	// SkippedSheets lists sheets without an identifier column.
	SkippedSheets []string
	// SkippedRows counts rows dropped for a blank or "nan" identifier.
	SkippedRows int
}

// CollisionSample returns at most CollisionSampleSize collisions.
func (r Report) CollisionSample() []string {
	if len(r.Collisions) <= CollisionSampleSize {
		return r.Collisions
	}
	return r.Collisions[:CollisionSampleSize]
}
