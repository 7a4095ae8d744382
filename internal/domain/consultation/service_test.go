package consultation

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/pkg/date"
)

type mockResolver struct {
	patients map[uuid.UUID]uuid.UUID
}

func (m *mockResolver) PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, ok := m.patients[userID]
	if !ok {
		return uuid.Nil, apperr.New(apperr.NotFound, "patient profile not found")
	}
	return id, nil
}

func (m *mockResolver) FamilyMemberName(ctx context.Context, familyMemberID, patientID uuid.UUID) (string, error) {
	return "", apperr.New(apperr.NotFound, "family member not found")
}

func (m *mockResolver) PatientDisplayName(ctx context.Context, patientID uuid.UUID) (string, error) {
	return "", apperr.New(apperr.NotFound, "patient not found")
}

type mockRepo struct {
	byID map[uuid.UUID]*Report
}

func newMockRepo() *mockRepo { return &mockRepo{byID: map[uuid.UUID]*Report{}} }

func (m *mockRepo) Create(ctx context.Context, r *Report) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id, patientID uuid.UUID) (*Report, error) {
	r, ok := m.byID[id]
	if !ok || r.PatientID != patientID {
		return nil, pgx.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	out := []*Report{}
	for _, r := range m.byID {
		if r.PatientID == patientID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ConsultationDate.After(out[j].ConsultationDate.Time)
	})
	return out, nil
}

func testService() (*Service, *mockRepo, uuid.UUID, uuid.UUID) {
	userID, patientID := uuid.New(), uuid.New()
	repo := newMockRepo()
	svc := NewService(repo, &mockResolver{patients: map[uuid.UUID]uuid.UUID{userID: patientID}})
	return svc, repo, userID, patientID
}

func mustDate(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestCreateConsultation(t *testing.T) {
	svc, _, userID, patientID := testService()

	rep, err := svc.Create(context.Background(), userID, CreateInput{
		DoctorName:       "Dr. Mehta",
		ConsultationDate: mustDate(t, "2026-08-01"),
		Diagnosis:        "gingivitis",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rep.PatientID != patientID {
		t.Fatalf("patientId = %s, want caller's patient", rep.PatientID)
	}
}

func TestCreateConsultationValidation(t *testing.T) {
	svc, _, userID, _ := testService()
	d := mustDate(t, "2026-08-01")

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing doctor", CreateInput{ConsultationDate: d, Diagnosis: "x"}},
		{"missing date", CreateInput{DoctorName: "Dr. Mehta", Diagnosis: "x"}},
		{"missing diagnosis", CreateInput{DoctorName: "Dr. Mehta", ConsultationDate: d}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), userID, tc.in)
			if apperr.KindOf(err) != apperr.BadRequest {
				t.Fatalf("kind = %v, want BadRequest", apperr.KindOf(err))
			}
		})
	}
}

func TestListConsultationsNewestFirst(t *testing.T) {
	svc, repo, userID, patientID := testService()
	for _, day := range []string{"2026-01-10", "2026-03-05", "2026-02-20"} {
		if err := repo.Create(context.Background(), &Report{
			PatientID:        patientID,
			DoctorName:       "Dr. Mehta",
			ConsultationDate: mustDate(t, day),
			Diagnosis:        "checkup",
		}); err != nil {
			t.Fatal(err)
		}
	}

	reports, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("len = %d, want 3", len(reports))
	}
	want := []string{"2026-03-05", "2026-02-20", "2026-01-10"}
	for i, rep := range reports {
		if rep.ConsultationDate.String() != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, rep.ConsultationDate, want[i])
		}
	}
}

func TestGetConsultationOwnership(t *testing.T) {
	svc, repo, userID, _ := testService()
	foreign := &Report{
		PatientID:        uuid.New(),
		DoctorName:       "Dr. Mehta",
		ConsultationDate: mustDate(t, "2026-08-01"),
		Diagnosis:        "checkup",
	}
	if err := repo.Create(context.Background(), foreign); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Get(context.Background(), userID, foreign.ID)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}
