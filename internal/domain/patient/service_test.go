package patient

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dentacare/dentacare/internal/domain/user"
	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/appwrite"
)

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPatientRepo struct {
	byUser    map[uuid.UUID]*Patient
	createErr error
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{byUser: map[uuid.UUID]*Patient{}}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *Patient) error {
	if m.createErr != nil {
		return m.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	m.byUser[p.UserID] = &cp
	return nil
}

func (m *mockPatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	for _, p := range m.byUser {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockPatientRepo) Update(ctx context.Context, p *Patient) error {
	cp := *p
	m.byUser[p.UserID] = &cp
	return nil
}

type mockUserRepo struct {
	byID map[uuid.UUID]*user.User
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	m := &mockUserRepo{byID: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, gender *string) error {
	u, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	if gender != nil {
		u.Gender = gender
	}
	return nil
}

type mockUploader struct {
	file  *appwrite.File
	err   error
	calls int
}

func (m *mockUploader) Upload(ctx context.Context, filename, mimeType string, content io.Reader) (*appwrite.File, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	f := *m.file
	f.Name = filename
	return &f, nil
}

func strp(s string) *string { return &s }

func TestSetupProfileCreates(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	users := newMockUserRepo(&user.User{ID: userID, Name: "old", Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)

	profile, created, err := svc.SetupProfile(context.Background(), userID, SetupInput{
		Name:  strp("Asha Rao"),
		Email: strp("asha@example.com"),
	})
	if err != nil {
		t.Fatalf("SetupProfile: %v", err)
	}
	if !created {
		t.Fatal("expected created=true on first setup")
	}
	if profile.Patient.Email == nil || *profile.Patient.Email != "asha@example.com" {
		t.Fatalf("email = %v, want asha@example.com", profile.Patient.Email)
	}
	if profile.User.Name != "Asha Rao" {
		t.Fatalf("user name = %q, want Asha Rao", profile.User.Name)
	}
}

func TestSetupProfileUpdatesExisting(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	if err := patients.Create(context.Background(), &Patient{UserID: userID, Email: strp("old@example.com")}); err != nil {
		t.Fatal(err)
	}
	users := newMockUserRepo(&user.User{ID: userID, Name: "Asha", Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)

	profile, created, err := svc.SetupProfile(context.Background(), userID, SetupInput{
		Email: strp("new@example.com"),
	})
	if err != nil {
		t.Fatalf("SetupProfile: %v", err)
	}
	if created {
		t.Fatal("expected created=false on repeat setup")
	}
	if *profile.Patient.Email != "new@example.com" {
		t.Fatalf("email = %q, want new@example.com", *profile.Patient.Email)
	}
	if profile.User.Name != "Asha" {
		t.Fatalf("user name changed to %q without input", profile.User.Name)
	}
}

func TestSetupProfileEmptyEmailKeepsPrior(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	if err := patients.Create(context.Background(), &Patient{UserID: userID, Email: strp("keep@example.com")}); err != nil {
		t.Fatal(err)
	}
	users := newMockUserRepo(&user.User{ID: userID, Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)

	profile, _, err := svc.SetupProfile(context.Background(), userID, SetupInput{Email: strp("")})
	if err != nil {
		t.Fatalf("SetupProfile: %v", err)
	}
	if profile.Patient.Email == nil || *profile.Patient.Email != "keep@example.com" {
		t.Fatalf("email = %v, want keep@example.com", profile.Patient.Email)
	}
}

func TestSetupProfileNestedUserNameWins(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	users := newMockUserRepo(&user.User{ID: userID, Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)

	profile, _, err := svc.SetupProfile(context.Background(), userID, SetupInput{
		Name: strp("outer"),
		User: &UserBlock{Name: strp("inner"), Phone: strp("9999999999")},
	})
	if err != nil {
		t.Fatalf("SetupProfile: %v", err)
	}
	if profile.User.Name != "inner" {
		t.Fatalf("user name = %q, want inner", profile.User.Name)
	}
	if profile.User.Phone != "9999999999" {
		t.Fatalf("user phone = %q, want 9999999999", profile.User.Phone)
	}
}

func TestSetupProfileLosesCreateRace(t *testing.T) {
	// The loser of two concurrent first-time setups sees no row on read but
	// hits the unique (user_id) index on insert.
	userID := uuid.New()
	patients := newMockPatientRepo()
	patients.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "patients_user_id_key"}
	users := newMockUserRepo(&user.User{ID: userID, Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)

	_, _, err := svc.SetupProfile(context.Background(), userID, SetupInput{Name: strp("Asha")})
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("kind = %v, want Conflict", apperr.KindOf(err))
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc := NewService(newMockPatientRepo(), newMockUserRepo(), &mockUploader{}, passthroughTx)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestSetProfileImage(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	if err := patients.Create(context.Background(), &Patient{UserID: userID}); err != nil {
		t.Fatal(err)
	}
	uploader := &mockUploader{file: &appwrite.File{ID: "f1", URL: "https://cloud.example/view/f1"}}
	svc := NewService(patients, newMockUserRepo(), uploader, passthroughTx)

	p, err := svc.SetProfileImage(context.Background(), userID, "me.png", "image/png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("SetProfileImage: %v", err)
	}
	if uploader.calls != 1 {
		t.Fatalf("uploader calls = %d, want 1", uploader.calls)
	}
	if p.ProfileImage == nil || *p.ProfileImage != "https://cloud.example/view/f1" {
		t.Fatalf("profileImage = %v, want stored view url", p.ProfileImage)
	}
	stored, _ := patients.GetByUserID(context.Background(), userID)
	if stored.ProfileImage == nil || *stored.ProfileImage != "https://cloud.example/view/f1" {
		t.Fatal("profile image not persisted")
	}
}

func TestSetProfileImageUploadFailure(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	if err := patients.Create(context.Background(), &Patient{UserID: userID}); err != nil {
		t.Fatal(err)
	}
	uploader := &mockUploader{err: apperr.New(apperr.StorageRejected, "storage rejected upload with status 401")}
	svc := NewService(patients, newMockUserRepo(), uploader, passthroughTx)

	_, err := svc.SetProfileImage(context.Background(), userID, "me.png", "image/png", strings.NewReader("img"))
	if apperr.KindOf(err) != apperr.StorageRejected {
		t.Fatalf("kind = %v, want StorageRejected", apperr.KindOf(err))
	}
	stored, _ := patients.GetByUserID(context.Background(), userID)
	if stored.ProfileImage != nil {
		t.Fatal("profile image set despite failed upload")
	}
}
