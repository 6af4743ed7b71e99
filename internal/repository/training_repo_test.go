package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/atp-media/rear-differential/internal/domain"
)

func TestTrainingRepository_ListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seedTraining(t, db, 25)
	ctx := context.Background()

	page1, total, err := repo.List(ctx, TrainingFilter{}, ListParams{Limit: 10, Offset: 0, SortBy: "imdb_id", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 25 {
		t.Errorf("expected total 25, got %d", total)
	}
	if len(page1) != 10 {
		t.Fatalf("expected 10 records, got %d", len(page1))
	}

	page2, _, err := repo.List(ctx, TrainingFilter{}, ListParams{Limit: 10, Offset: 10, SortBy: "imdb_id", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2) != 10 {
		t.Fatalf("expected 10 records, got %d", len(page2))
	}

	// Pages must be disjoint
	ids := map[string]bool{}
	for _, rec := range page1 {
		ids[rec.IMDBID] = true
	}
	for _, rec := range page2 {
		if ids[rec.IMDBID] {
			t.Errorf("record %s appears on both pages", rec.IMDBID)
		}
	}
}

func TestTrainingRepository_ListSortFallback(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seedTraining(t, db, 5)
	ctx := context.Background()

	// An unrecognized sort field must silently fall back, never error
	records, _, err := repo.List(ctx, TrainingFilter{}, ListParams{SortBy: "evil; DROP TABLE training"})
	if err != nil {
		t.Fatalf("unexpected error for unrecognized sort field: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("expected 5 records, got %d", len(records))
	}

	// Default order is created_at desc
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Errorf("records not in descending created_at order at index %d", i)
		}
	}
}

func TestTrainingRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seeded := seedTraining(t, db, 6)
	ctx := context.Background()

	// Flip one record to would_not_watch
	if err := repo.UpdateLabel(ctx, seeded[0].IMDBID, domain.LabelWouldNotWatch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	label := domain.LabelWouldNotWatch
	records, total, err := repo.List(ctx, TrainingFilter{Label: &label}, ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("expected 1 record, got total=%d len=%d", total, len(records))
	}
	if records[0].IMDBID != seeded[0].IMDBID {
		t.Errorf("expected %s, got %s", seeded[0].IMDBID, records[0].IMDBID)
	}

	// Case-insensitive substring match on title
	records, _, err = repo.List(ctx, TrainingFilter{MediaTitle: "movie 0"}, ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 6 {
		t.Errorf("expected 6 title matches, got %d", len(records))
	}
}

func TestTrainingRepository_UpdateLabelCascade(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seeded := seedTraining(t, db, 1)
	ctx := context.Background()

	label := domain.LabelWouldNotWatch
	changed, err := repo.UpdateFields(ctx, seeded[0].IMDBID, domain.TrainingUpdate{Label: &label})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changed) != 3 {
		t.Errorf("expected 3 changed fields, got %v", changed)
	}

	rec, err := repo.GetByIMDBID(ctx, seeded[0].IMDBID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Label != domain.LabelWouldNotWatch {
		t.Errorf("expected label would_not_watch, got %s", rec.Label)
	}
	if !rec.HumanLabeled {
		t.Error("expected human_labeled to be forced true by label write")
	}
	if !rec.Reviewed {
		t.Error("expected reviewed to be forced true by label write")
	}
}

func TestTrainingRepository_UpdateLabelCascadeWinsOverExplicitFalse(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seeded := seedTraining(t, db, 1)
	ctx := context.Background()

	label := domain.LabelWouldWatch
	explicitFalse := false
	_, err := repo.UpdateFields(ctx, seeded[0].IMDBID, domain.TrainingUpdate{
		Label:        &label,
		HumanLabeled: &explicitFalse,
		Reviewed:     &explicitFalse,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := repo.GetByIMDBID(ctx, seeded[0].IMDBID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.HumanLabeled || !rec.Reviewed {
		t.Error("label write must force human_labeled and reviewed true over explicit false")
	}
}

func TestTrainingRepository_UpdateErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seedTraining(t, db, 1)
	ctx := context.Background()

	_, err := repo.UpdateFields(ctx, "tt1000001", domain.TrainingUpdate{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Errorf("expected ErrNoFieldsToUpdate, got %v", err)
	}

	anomalous := true
	_, err = repo.UpdateFields(ctx, "tt7777777", domain.TrainingUpdate{Anomalous: &anomalous})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := repo.GetByIMDBID(ctx, "tt7777777"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from get, got %v", err)
	}
}

func TestTrainingRepository_UpdateReviewed(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrainingRepository(db)
	seeded := seedTraining(t, db, 1)
	ctx := context.Background()

	if err := repo.UpdateReviewed(ctx, seeded[0].IMDBID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, err := repo.GetByIMDBID(ctx, seeded[0].IMDBID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.Reviewed {
		t.Error("expected reviewed true")
	}
	if rec.HumanLabeled {
		t.Error("reviewed-only write must not touch human_labeled")
	}
}
