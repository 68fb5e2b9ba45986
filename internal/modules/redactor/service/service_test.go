package redactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/redactor/dto"
	"newsagency.com/newsroom/internal/modules/redactor/repository"
	"newsagency.com/newsroom/internal/testutil/memstore"
	"newsagency.com/newsroom/pkg/apperror"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/validator"
)

func newService() (*memstore.DB, RedactorService) {
	db := memstore.New()
	return db, NewRedactorService(db.Redactors(), db.Newspapers())
}

func createForm(username string) dto.CreateRedactorForm {
	return dto.CreateRedactorForm{
		Username:          username,
		FirstName:         "Ada",
		LastName:          "Lovelace",
		YearsOfExperience: "4",
		Password1:         "s3cure-pass",
		Password2:         "s3cure-pass",
	}
}

func TestCreateRedactor_HashesPassword(t *testing.T) {
	_, svc := newService()

	created, err := svc.CreateRedactor(context.Background(), createForm("ada"))
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cure-pass")))
	assert.Equal(t, uint(4), created.YearsOfExperience)
}

func TestCreateRedactor_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	_, svc := newService()

	_, err := svc.CreateRedactor(ctx, createForm("ada"))
	require.NoError(t, err)

	_, err = svc.CreateRedactor(ctx, createForm("ada"))
	formErrs, ok := validator.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, usernameTaken, formErrs["username"])
}

// staleLookup misses existing usernames, as when a concurrent insert lands
// between the lookup and the write.
type staleLookup struct {
	repository.RedactorRepository
}

func (staleLookup) FindByUsername(context.Context, string) (*entity.Redactor, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCreateRedactor_UniqueIndexViolation(t *testing.T) {
	db := memstore.New()
	svc := NewRedactorService(staleLookup{db.Redactors()}, db.Newspapers())

	_, err := svc.CreateRedactor(context.Background(), createForm("ann"))
	require.NoError(t, err)

	_, err = svc.CreateRedactor(context.Background(), createForm("ann"))
	formErrs, ok := validator.AsFormErrors(err)
	require.True(t, ok, "expected form errors, got %v", err)
	assert.Equal(t, "A user with that username already exists.", formErrs["username"])
}

func TestCreateRedactor_NumericPassword(t *testing.T) {
	_, svc := newService()
	form := createForm("ada")
	form.Password1, form.Password2 = "12345678", "12345678"

	_, err := svc.CreateRedactor(context.Background(), form)
	formErrs, ok := validator.AsFormErrors(err)
	require.True(t, ok)
	assert.Contains(t, formErrs, "password2")
}

func TestCreateRedactor_YearsOfExperience(t *testing.T) {
	_, svc := newService()

	form := createForm("ada")
	form.YearsOfExperience = ""
	created, err := svc.CreateRedactor(context.Background(), form)
	require.NoError(t, err)
	assert.Zero(t, created.YearsOfExperience)

	for _, raw := range []string{"2147483648", "99999999999999999999999"} {
		form := createForm("grace")
		form.YearsOfExperience = raw
		_, err := svc.CreateRedactor(context.Background(), form)
		formErrs, ok := validator.AsFormErrors(err)
		require.True(t, ok, raw)
		assert.Equal(t, "Ensure this value is less than or equal to 2147483647.", formErrs["years_of_experience"])
	}
}

func TestUpdateRedactor(t *testing.T) {
	ctx := context.Background()
	_, svc := newService()
	ada, err := svc.CreateRedactor(ctx, createForm("ada"))
	require.NoError(t, err)
	_, err = svc.CreateRedactor(ctx, createForm("grace"))
	require.NoError(t, err)

	updated, err := svc.UpdateRedactor(ctx, ada.ID, dto.UpdateRedactorForm{Username: "ada", YearsOfExperience: "9"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), updated.YearsOfExperience)

	_, err = svc.UpdateRedactor(ctx, ada.ID, dto.UpdateRedactorForm{Username: "grace"})
	_, ok := validator.AsFormErrors(err)
	assert.True(t, ok)

	_, err = svc.UpdateRedactor(ctx, 777, dto.UpdateRedactorForm{Username: "nobody"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListRedactors_Search(t *testing.T) {
	ctx := context.Background()
	_, svc := newService()
	for _, name := range []string{"zoe", "adam", "madeline"} {
		_, err := svc.CreateRedactor(ctx, createForm(name))
		require.NoError(t, err)
	}

	all, err := svc.ListRedactors(ctx, commonDto.RedactorFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, all.Data, 3)
	assert.Equal(t, "adam", all.Data[0].Username)

	res, err := svc.ListRedactors(ctx, commonDto.RedactorFilter{Username: "AD"}, 1)
	require.NoError(t, err)
	assert.Len(t, res.Data, 2)

	res, err = svc.ListRedactors(ctx, commonDto.RedactorFilter{Username: "xyz"}, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}

func TestToggleNewspaper_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, svc := newService()
	ada, err := svc.CreateRedactor(ctx, createForm("ada"))
	require.NoError(t, err)

	topic := &entity.Topic{Name: "Science"}
	require.NoError(t, db.Topics().Create(ctx, topic))
	paper := &entity.Newspaper{Title: "Engines", Content: "x", TopicID: topic.ID}
	require.NoError(t, db.Newspapers().Create(ctx, paper, nil))

	assigned, err := svc.ToggleNewspaper(ctx, ada.ID, paper.ID)
	require.NoError(t, err)
	assert.True(t, assigned)

	got, err := svc.GetRedactor(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, got.Newspapers, 1)
	assert.Equal(t, "Engines", got.Newspapers[0].Title)

	assigned, err = svc.ToggleNewspaper(ctx, ada.ID, paper.ID)
	require.NoError(t, err)
	assert.False(t, assigned)

	got, err = svc.GetRedactor(ctx, ada.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Newspapers)

	_, err = svc.ToggleNewspaper(ctx, ada.ID, 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.ToggleNewspaper(ctx, 9999, paper.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteRedactor_KeepsNewspapers(t *testing.T) {
	ctx := context.Background()
	db, svc := newService()
	ada, err := svc.CreateRedactor(ctx, createForm("ada"))
	require.NoError(t, err)

	topic := &entity.Topic{Name: "Science"}
	require.NoError(t, db.Topics().Create(ctx, topic))
	paper := &entity.Newspaper{Title: "Engines", Content: "x", TopicID: topic.ID}
	require.NoError(t, db.Newspapers().Create(ctx, paper, []uint{ada.ID}))

	require.NoError(t, svc.DeleteRedactor(ctx, ada.ID))

	kept, err := db.Newspapers().FindByID(ctx, paper.ID)
	require.NoError(t, err)
	assert.Empty(t, kept.Publishers)
	assert.ErrorIs(t, svc.DeleteRedactor(ctx, ada.ID), apperror.ErrNotFound)
}
