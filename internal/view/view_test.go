package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/validation"
)

// renderPage executes the named page and returns the produced HTML.
func renderPage(t *testing.T, name string, page Page) string {
	r, err := New()
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, page).Render(recorder))
	return recorder.Body.String()
}

// TestAllPagesRenderEmpty renders every page with zero data. It expects the layout around each.
func TestAllPagesRenderEmpty(t *testing.T) {
	for _, name := range pages {
		html := renderPage(t, name, Page{Title: "Title of " + name})
		assert.Contains(t, html, "<title>Title of "+name+"</title>", name)
		assert.Contains(t, html, `<a href="/contact">Contacts</a>`, name)
	}
}

// TestListPage expects each contact with detail, edit and delete actions and the flash message.
func TestListPage(t *testing.T) {
	html := renderPage(t, List, Page{
		Title:    "Contacts",
		Msg:      "Contact added.",
		Contacts: []model.Contact{{Name: "Alita"}, {Name: "Budi Santoso"}},
	})
	assert.Contains(t, html, `<p class="flash">Contact added.</p>`)
	assert.Contains(t, html, `href="/contact/Alita"`)
	assert.Contains(t, html, `href="/contact/edit/Budi%20Santoso"`)
	assert.Contains(t, html, `<input type="hidden" name="_method" value="DELETE">`)
	assert.Contains(t, html, `<td>2</td>`)
	assert.NotContains(t, html, "No contacts yet.")
}

// TestLinksEscapeNames expects names to be escaped as a single path segment in every link.
func TestLinksEscapeNames(t *testing.T) {
	html := renderPage(t, List, Page{Contacts: []model.Contact{{Name: "Who?"}, {Name: "a/b"}}})
	assert.Contains(t, html, `href="/contact/Who%3F"`)
	assert.Contains(t, html, `href="/contact/edit/Who%3F"`)
	assert.Contains(t, html, `href="/contact/a%2Fb"`)
	assert.Contains(t, html, `href="/contact/edit/a%2Fb"`)
	assert.Contains(t, html, `<input type="hidden" name="name" value="a/b">`)

	html = renderPage(t, Detail, Page{Contact: model.Contact{Name: "50% off"}})
	assert.Contains(t, html, `href="/contact/edit/50%25%20off"`)
}

// TestEditPageWithErrors expects the hidden fields, the submitted values and the error list.
func TestEditPageWithErrors(t *testing.T) {
	html := renderPage(t, Edit, Page{
		Title:   "Edit Contact",
		Contact: model.Contact{Id: "7", Name: "Budi", Email: "not-an-email", Phone: "081234567890"},
		OldName: "Alita",
		Errors:  validation.Errors{{Field: "email", Message: "Email is not valid!"}},
	})
	assert.Contains(t, html, `<input type="hidden" name="_method" value="PUT">`)
	assert.Contains(t, html, `<input type="hidden" name="id" value="7">`)
	assert.Contains(t, html, `<input type="hidden" name="oldName" value="Alita">`)
	assert.Contains(t, html, `value="not-an-email"`)
	assert.Contains(t, html, `<li data-field="email">Email is not valid!</li>`)
}

// TestValuesAreEscaped expects markup in contact data to be escaped.
func TestValuesAreEscaped(t *testing.T) {
	html := renderPage(t, Detail, Page{Contact: model.Contact{Name: "<script>alert(1)</script>"}})
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

// TestUnknownPage expects a panic for a page that does not exist.
func TestUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Panics(t, func() { r.Instance("missing", nil) })
}
