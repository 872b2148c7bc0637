package identity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/instructorhub/internal/identity"
)

func TestGrants_GetDefaultsToDenyAll(t *testing.T) {
	t.Parallel()

	var g identity.Grants
	entry := g.Get(identity.AppRoster)
	assert.False(t, entry.Access)
	assert.True(t, entry.ViewOnly)
	assert.Empty(t, entry.Pages)

	g = identity.Grants{identity.AppSMS: {Access: true}}
	assert.True(t, g.Get(identity.AppSMS).Access)
	assert.False(t, g.Get(identity.AppTasks).Access)
}

func TestGrants_UnmarshalDropsUnknownNames(t *testing.T) {
	t.Parallel()

	raw := `{
		"oral_test": {"access": true, "view_only": false, "pages": ["questions", "not_a_page"]},
		"not_an_app": {"access": true},
		"sms": {"access": true, "view_only": true}
	}`

	var g identity.Grants
	require.NoError(t, json.Unmarshal([]byte(raw), &g))

	assert.Len(t, g, 2)
	assert.Equal(t, []identity.Page{identity.PageQuestions}, g[identity.AppOralTest].Pages)
	assert.True(t, g[identity.AppSMS].ViewOnly)
	_, ok := g["not_an_app"]
	assert.False(t, ok)
}

func TestParseApp(t *testing.T) {
	t.Parallel()

	app, ok := identity.ParseApp("oral_test")
	require.True(t, ok)
	assert.Equal(t, identity.AppOralTest, app)

	_, ok = identity.ParseApp("payroll")
	assert.False(t, ok)

	_, ok = identity.ParseApp("")
	assert.False(t, ok)
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	page, ok := identity.ParsePage(identity.AppSMS, "hazards")
	require.True(t, ok)
	assert.Equal(t, identity.PageHazards, page)

	// Page names are scoped to their application.
	_, ok = identity.ParsePage(identity.AppRoster, "hazards")
	assert.False(t, ok)

	_, ok = identity.ParsePage(identity.AppSMS, "questions")
	assert.False(t, ok)
}

func TestKnownPagesReturnsCopies(t *testing.T) {
	t.Parallel()

	pages := identity.KnownPages(identity.AppOralTest)
	require.NotEmpty(t, pages)
	pages[0] = "mutated"

	assert.Equal(t, identity.PageQuestions, identity.KnownPages(identity.AppOralTest)[0])
	assert.Nil(t, identity.KnownPages(identity.AppRoster))
}

func TestEntry_HasPage(t *testing.T) {
	t.Parallel()

	e := identity.Entry{Pages: []identity.Page{identity.PageQuestions, identity.PageResults}}
	assert.True(t, e.HasPage(identity.PageQuestions))
	assert.False(t, e.HasPage(identity.PageUsers))
	assert.False(t, identity.Entry{}.HasPage(identity.PageQuestions))
}
