package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
)

func newFlash() *Flash {
	return New(config.FlashConfig{Cookie: "flash", MaxAge: 60})
}

// TestSetAndPop sets a message in one request and reads it in the next one. It expects the
// second read to clear the cookie.
func TestSetAndPop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFlash()

	setRecorder := httptest.NewRecorder()
	setContext, _ := gin.CreateTestContext(setRecorder)
	setContext.Request = httptest.NewRequest(http.MethodPost, "/contact", nil)
	f.Set(setContext, "Contact added.")
	cookies := setRecorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "flash", cookies[0].Name)
	assert.Equal(t, 60, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	popRecorder := httptest.NewRecorder()
	popContext, _ := gin.CreateTestContext(popRecorder)
	popContext.Request = httptest.NewRequest(http.MethodGet, "/contact", nil)
	popContext.Request.AddCookie(cookies[0])
	assert.Equal(t, "Contact added.", f.Pop(popContext))

	cleared := popRecorder.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)
}

// TestPopWithoutCookie expects an empty message and no cookie to be written.
func TestPopWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/contact", nil)
	assert.Equal(t, "", newFlash().Pop(c))
	assert.Empty(t, recorder.Result().Cookies())
}
