package moderation

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

const verificationTable = "tithe_offering_verifications"

// ThresholdError is returned when a tithe collection is moved forward before
// enough distinct verifiers have signed off.
type ThresholdError struct {
	Progress lifecycle.VerificationProgress
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("collection has %s verifications", e.Progress.Display())
}

// Verifier records tithe and offering verifications.
type Verifier struct {
	store   store.RecordStore
	metrics *metrics.LifecycleMetrics
}

func NewVerifier(s store.RecordStore, m *metrics.LifecycleMetrics) *Verifier {
	return &Verifier{store: s, metrics: m}
}

// Verify records that verifierID attests collectionID. A second call with the
// same pair is a no-op, whether caught by the pre-check or by the unique
// constraint. The collection status is never changed here.
func (v *Verifier) Verify(ctx context.Context, collectionID, verifierID int) (lifecycle.VerificationProgress, bool, error) {
	existing, err := v.store.Count(ctx, store.Query{
		Table: verificationTable,
		Where: []exp.Expression{
			goqu.C("tithe_offering_id").Eq(collectionID),
			goqu.C("verified_by").Eq(verifierID),
		},
	})
	if err != nil {
		return lifecycle.VerificationProgress{}, false, err
	}

	recorded := false
	if existing == 0 {
		_, err := v.store.Insert(ctx, verificationTable, models.TitheOfferingVerification{
			Tithe_Offering_ID: collectionID,
			Verified_By:       verifierID,
		})
		switch {
		case err == nil:
			recorded = true
		case store.IsUniqueViolation(err):
		default:
			return lifecycle.VerificationProgress{}, false, err
		}
	}

	if recorded {
		v.metrics.IncVerification("recorded")
	} else {
		v.metrics.IncVerification("duplicate")
	}

	progress, err := Progress(ctx, v.store, collectionID)
	return progress, recorded, err
}

// Verifications lists the verification rows of the given collections, oldest first.
func Verifications(ctx context.Context, s store.RecordStore, collectionIDs ...int) ([]models.TitheOfferingVerification, error) {
	var rows []models.TitheOfferingVerification
	if len(collectionIDs) == 0 {
		return rows, nil
	}
	err := s.Select(ctx, store.Query{
		Table: verificationTable,
		Where: []exp.Expression{goqu.C("tithe_offering_id").In(collectionIDs)},
		Order: []exp.OrderedExpression{goqu.C("verified_at").Asc()},
	}, &rows)
	return rows, err
}

// Progress counts distinct verifiers of one collection.
func Progress(ctx context.Context, s store.RecordStore, collectionID int) (lifecycle.VerificationProgress, error) {
	rows, err := Verifications(ctx, s, collectionID)
	if err != nil {
		return lifecycle.VerificationProgress{}, err
	}
	return progressOf(rows), nil
}

func progressOf(rows []models.TitheOfferingVerification) lifecycle.VerificationProgress {
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Verified_By)
	}
	return lifecycle.NewVerificationProgress(ids)
}

func verificationGuard(ctx context.Context, s store.RecordStore, req TransitionRequest) error {
	progress, err := Progress(ctx, s, req.ID)
	if err != nil {
		return err
	}
	if !progress.Reached() {
		return &ThresholdError{Progress: progress}
	}
	return nil
}

// AttachVerifications fills the verification list and progress of each collection.
func AttachVerifications(ctx context.Context, s store.RecordStore, collections []models.TitheOffering) error {
	ids := make([]int, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
	}
	rows, err := Verifications(ctx, s, ids...)
	if err != nil {
		return err
	}

	byCollection := make(map[int][]models.TitheOfferingVerification, len(collections))
	for _, r := range rows {
		byCollection[r.Tithe_Offering_ID] = append(byCollection[r.Tithe_Offering_ID], r)
	}
	for i := range collections {
		list := byCollection[collections[i].ID]
		if list == nil {
			list = []models.TitheOfferingVerification{}
		}
		collections[i].Verifications = list
		collections[i].Progress = progressOf(list)
		collections[i].Display = collections[i].Progress.Display()
	}
	return nil
}
