package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsagency.com/newsroom/internal/entity"
	newspaperDto "newsagency.com/newsroom/internal/modules/newspaper/dto"
	redactorDto "newsagency.com/newsroom/internal/modules/redactor/dto"
	topicDto "newsagency.com/newsroom/internal/modules/topic/dto"
	"newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/validator"
)

func TestPageURL(t *testing.T) {
	search := dto.SearchForm{Field: "name", Value: "hot & cold"}
	assert.Equal(t, "?name=hot+%26+cold&page=2", pageURL(search, 2))
	assert.Equal(t, "?page=3", pageURL(dto.SearchForm{Field: "name"}, 3))
}

func TestTemplatesRender(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	topic := &entity.Topic{ID: 1, Name: "Sport"}
	redactor := &entity.Redactor{ID: 2, Username: "ada", FirstName: "Ada", LastName: "Lovelace", YearsOfExperience: 3}
	newspaper := &entity.Newspaper{
		ID:            3,
		Title:         "Cup final",
		Content:       "<p>What a match</p>",
		PublishedDate: time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
		TopicID:       topic.ID,
		Topic:         topic,
		Publishers:    []entity.Redactor{*redactor},
	}
	withPapers := *redactor
	withPapers.Newspapers = []entity.Newspaper{*newspaper}
	meta := pagination.NewMeta(2, 12, pagination.PageSize)
	search := dto.SearchForm{Field: "name", Value: "sp", Placeholder: "Search by name"}
	errs := validator.FormErrors{validator.NonFieldErrors: "Broken", "name": "This field is required."}

	pages := map[string]map[string]any{
		"index.html": {"num_redactors": int64(1), "num_newspapers": int64(2), "num_topics": int64(3), "num_visits": 1},
		"login.html": {"form": struct{ Username, Next string }{"ada", "/topics/"}, "errors": errs},
		"error.html": {"status": 404, "error": "topic not found"},

		"topic_list.html":           {"topic_list": []*entity.Topic{topic}, "pagination": meta, "search_form": search},
		"topic_form.html":           {"topic": (*entity.Topic)(nil), "form": topicDto.TopicForm{Name: "x"}, "errors": errs},
		"topic_confirm_delete.html": {"topic": topic},

		"newspaper_list.html":   {"newspaper_list": []*entity.Newspaper{newspaper}, "pagination": meta, "search_form": search},
		"newspaper_detail.html": {"newspaper": newspaper, "redactor_id": uint(2), "assigned": true},
		"newspaper_form.html": {
			"newspaper": newspaper,
			"form":      newspaperDto.NewNewspaperForm(newspaper),
			"errors":    validator.FormErrors{},
			"topics":    []*entity.Topic{topic},
			"redactors": []*entity.Redactor{redactor},
		},
		"newspaper_confirm_delete.html": {"newspaper": newspaper},

		"redactor_list.html":   {"redactor_list": []*entity.Redactor{redactor}, "pagination": meta, "search_form": search},
		"redactor_detail.html": {"redactor": &withPapers},
		"redactor_form.html": {
			"redactor": nil,
			"form":     redactorDto.CreateRedactorForm{Username: "ada"},
			"errors":   validator.FormErrors{"password2": "The two password fields didn't match."},
			"creating": true,
		},
		"redactor_confirm_delete.html": {"redactor": redactor},
	}

	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
			assert.Contains(t, buf.String(), "</html>")
		})
	}
}

func TestTemplates_ContentAndSelections(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	topic := &entity.Topic{ID: 1, Name: "Sport"}
	newspaper := &entity.Newspaper{ID: 3, Title: "<b>Cup</b>", Content: "<p>What a match</p>", Topic: topic, TopicID: 1}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "newspaper_detail.html", map[string]any{
		"newspaper": newspaper, "redactor_id": uint(2), "assigned": false,
	}))
	body := buf.String()
	assert.Contains(t, body, "<p>What a match</p>")
	assert.Contains(t, body, "&lt;b&gt;Cup&lt;/b&gt;")
	assert.Contains(t, body, "/redactors/2/toggle-newspaper/?newspaper=3")
	assert.Contains(t, body, "Add me to publishers")

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "newspaper_form.html", map[string]any{
		"newspaper": (*entity.Newspaper)(nil),
		"form":      newspaperDto.NewspaperForm{Topic: "1", Publishers: []string{"2"}},
		"errors":    validator.FormErrors{},
		"topics":    []*entity.Topic{topic},
		"redactors": []*entity.Redactor{{ID: 2, Username: "ada"}, {ID: 4, Username: "grace"}},
	}))
	body = buf.String()
	assert.Contains(t, body, `value="1" selected`)
	assert.Contains(t, body, `value="2" checked`)
	assert.NotContains(t, body, `value="4" checked`)
}
