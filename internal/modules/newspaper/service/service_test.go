package newspaper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/newspaper/dto"
	"newsagency.com/newsroom/internal/testutil/memstore"
	"newsagency.com/newsroom/pkg/apperror"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/validator"
)

type fixture struct {
	db       *memstore.DB
	svc      NewspaperService
	topic    *entity.Topic
	redactor *entity.Redactor
}

func ids(values ...uint) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, dto.FormatID(v))
	}
	return out
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memstore.New()

	topic := &entity.Topic{Name: "Sport"}
	require.NoError(t, db.Topics().Create(ctx, topic))
	redactor := &entity.Redactor{Username: "writer"}
	require.NoError(t, db.Redactors().Create(ctx, redactor))

	return &fixture{
		db:       db,
		svc:      NewNewspaperService(db.Newspapers(), db.Topics(), db.Redactors()),
		topic:    topic,
		redactor: redactor,
	}
}

func TestCreateNewspaper(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.CreateNewspaper(ctx, dto.NewspaperForm{
		Title:      "Test Newspaper",
		Content:    "Test Content",
		Topic:      dto.FormatID(f.topic.ID),
		Publishers: ids(f.redactor.ID, f.redactor.ID),
	})
	require.NoError(t, err)

	got, err := f.svc.GetNewspaper(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Newspaper", got.Title)
	assert.Equal(t, "Test Content", got.Content)
	require.NotNil(t, got.Topic)
	assert.Equal(t, "Sport", got.Topic.Name)
	require.Len(t, got.Publishers, 1)
	assert.Equal(t, "writer", got.Publishers[0].Username)
	assert.False(t, got.PublishedDate.IsZero())
}

func TestCreateNewspaper_SanitizesContent(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateNewspaper(context.Background(), dto.NewspaperForm{
		Title:   "Match report",
		Content: `<p onclick="steal()">Final score</p><script>alert(1)</script>`,
		Topic:   dto.FormatID(f.topic.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Final score</p>", created.Content)

	_, err = f.svc.CreateNewspaper(context.Background(), dto.NewspaperForm{
		Title:   "Empty",
		Content: "<script>alert(1)</script>",
		Topic:   dto.FormatID(f.topic.ID),
	})
	formErrs, ok := validator.AsFormErrors(err)
	require.True(t, ok)
	assert.Contains(t, formErrs, "content")
}

func TestCreateNewspaper_UnknownChoices(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateNewspaper(context.Background(), dto.NewspaperForm{
		Title:      "Orphan",
		Content:    "Body",
		Topic:      "4040",
		Publishers: ids(f.redactor.ID, 5050),
	})
	formErrs, ok := validator.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, invalidChoice, formErrs["topic"])
	assert.Contains(t, formErrs["publishers"], "5050")

	count, err := f.db.Newspapers().Count(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateNewspaper_MalformedChoices(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateNewspaper(context.Background(), dto.NewspaperForm{
		Title:      "Orphan",
		Content:    "Body",
		Topic:      "abc",
		Publishers: []string{dto.FormatID(f.redactor.ID), "x1"},
	})
	formErrs, ok := validator.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, invalidChoice, formErrs["topic"])
	assert.Contains(t, formErrs["publishers"], "x1")

	_, err = f.svc.CreateNewspaper(context.Background(), dto.NewspaperForm{
		Title: "Zero", Content: "Body", Topic: "0",
	})
	formErrs, ok = validator.AsFormErrors(err)
	require.True(t, ok)
	assert.Equal(t, invalidChoice, formErrs["topic"])
}

func TestUpdateNewspaper_ReplacesPublishersKeepsPublishedDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := &entity.Redactor{Username: "editor"}
	require.NoError(t, f.db.Redactors().Create(ctx, other))

	created, err := f.svc.CreateNewspaper(ctx, dto.NewspaperForm{
		Title: "Draft", Content: "Body", Topic: dto.FormatID(f.topic.ID), Publishers: ids(f.redactor.ID),
	})
	require.NoError(t, err)
	published := created.PublishedDate

	_, err = f.svc.UpdateNewspaper(ctx, created.ID, dto.NewspaperForm{
		Title: "Final", Content: "Body v2", Topic: dto.FormatID(f.topic.ID), Publishers: ids(other.ID),
	})
	require.NoError(t, err)

	got, err := f.svc.GetNewspaper(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.True(t, published.Equal(got.PublishedDate))
	require.Len(t, got.Publishers, 1)
	assert.Equal(t, "editor", got.Publishers[0].Username)

	_, err = f.svc.UpdateNewspaper(ctx, 9999, dto.NewspaperForm{Title: "x", Content: "y", Topic: dto.FormatID(f.topic.ID)})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListNewspapers_NewestFirstAndSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, title := range []string{"Morning Edition", "Evening Edition", "Weekend Special"} {
		_, err := f.svc.CreateNewspaper(ctx, dto.NewspaperForm{Title: title, Content: "Body", Topic: dto.FormatID(f.topic.ID)})
		require.NoError(t, err)
	}

	all, err := f.svc.ListNewspapers(ctx, commonDto.NewspaperFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, all.Data, 3)
	assert.Equal(t, "Weekend Special", all.Data[0].Title)
	assert.Equal(t, "Morning Edition", all.Data[2].Title)

	res, err := f.svc.ListNewspapers(ctx, commonDto.NewspaperFilter{Title: "edition"}, 1)
	require.NoError(t, err)
	assert.Len(t, res.Data, 2)

	res, err = f.svc.ListNewspapers(ctx, commonDto.NewspaperFilter{Title: "special"}, 1)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Weekend Special", res.Data[0].Title)
}

func TestDeleteNewspaper_KeepsRedactors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.CreateNewspaper(ctx, dto.NewspaperForm{
		Title: "Gone", Content: "Body", Topic: dto.FormatID(f.topic.ID), Publishers: ids(f.redactor.ID),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNewspaper(ctx, created.ID))
	assert.ErrorIs(t, f.svc.DeleteNewspaper(ctx, created.ID), apperror.ErrNotFound)

	_, err = f.db.Redactors().FindByID(ctx, f.redactor.ID)
	assert.NoError(t, err)
	assert.Zero(t, f.db.LinkCount())
}

func TestFormChoices(t *testing.T) {
	f := newFixture(t)

	choices, err := f.svc.FormChoices(context.Background())
	require.NoError(t, err)
	require.Len(t, choices.Topics, 1)
	require.Len(t, choices.Redactors, 1)
	assert.Equal(t, "writer", choices.Redactors[0].Username)
}
