package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
	"gitlab.com/dirk.krummacker/contacts-web/internal/flash"
	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store"
	"gitlab.com/dirk.krummacker/contacts-web/internal/validation"
	"gitlab.com/dirk.krummacker/contacts-web/internal/view"
)

// Messages shown on the list page after a redirect.
const (
	msgAdded    = "Contact added."
	msgUpdated  = "Contact updated."
	msgDeleted  = "Contact deleted."
	msgNotFound = "Contact not found."
)

// listURL is where every successful write redirects to.
const listURL = "/contact"

// Service holds the collaborators of the HTTP handlers.
type Service struct {
	contacts store.Store
	validate *validation.Validator
	flash    *flash.Flash
	renderer *view.Renderer
	cfg      *config.Config
	log      zerolog.Logger
}

// New creates the service on top of an opened store.
func New(contacts store.Store, cfg *config.Config, log zerolog.Logger) (*Service, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	return &Service{
		contacts: contacts,
		validate: validation.New(),
		flash:    flash.New(cfg.Flash),
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}, nil
}

// SetupHttpRouter initializes the router, registers all pages and wraps the result with the
// method override.
func (s *Service) SetupHttpRouter() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	if s.cfg.Server.GinLogging == "off" {
		s.log.Info().Msg("Turning off HTTP request logging.")
	} else {
		router.Use(gin.Logger())
	}
	router.HTMLRender = s.renderer
	// Match on the escaped path so that a name containing '/' stays one :name segment.
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.GET("/", s.home)
	router.GET("/about", s.about)
	router.GET("/contact", s.listContacts)
	router.GET("/contact/add", s.addContactForm)
	router.POST("/contact", s.createContact)
	router.PUT("/contact", s.updateContact)
	router.DELETE("/contact", s.deleteContact)
	router.GET("/contact/edit/:name", s.editContactForm)
	router.GET("/contact/:name", s.findContactByName)
	return MethodOverride(router)
}

// home renders the welcome page with a sample contact table.
func (s *Service) home(c *gin.Context) {
	c.HTML(http.StatusOK, view.Index, view.Page{
		Title: "Home",
		Name:  "Budi",
		Samples: []model.Contact{
			{Name: "Alita", Email: "alita@gmail.com", Phone: "087854712611"},
		},
	})
}

func (s *Service) about(c *gin.Context) {
	c.HTML(http.StatusOK, view.About, view.Page{Title: "About"})
}

// listContacts renders all contacts together with the pending flash message.
//
//	> curl http://localhost:3000/contact
func (s *Service) listContacts(c *gin.Context) {
	contacts, err := s.contacts.FindAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, view.List, view.Page{
		Title:    "Contacts",
		Contacts: contacts,
		Msg:      s.flash.Pop(c),
	})
}

func (s *Service) addContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, view.Add, view.Page{Title: "Add Contact"})
}

// createContact validates the add form and inserts the contact. On validation failure the form
// is rendered again with the submitted values and the list of errors.
//
//	> curl http://localhost:3000/contact --data "name=Alita&email=alita@gmail.com&phone=087854712611"
func (s *Service) createContact(c *gin.Context) {
	var form model.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	form.Id, form.OldName = "", ""
	ctx := c.Request.Context()

	err := s.validate.Contact(ctx, s.contacts, form, "")
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		c.HTML(http.StatusUnprocessableEntity, view.Add, view.Page{
			Title:   "Add Contact",
			Contact: form.Contact(),
			Errors:  fieldErrors,
		})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	contact := form.Contact()
	if err := s.contacts.Insert(ctx, &contact); err != nil {
		s.fail(c, err)
		return
	}
	s.log.Debug().Str("id", contact.Id).Str("name", contact.Name).Msg("contact created")
	s.redirectToList(c, msgAdded)
}

// editContactForm renders the edit form filled with the contact of the given name. A name that
// does not exist renders an empty form.
func (s *Service) editContactForm(c *gin.Context) {
	contact, ok := s.lookup(c, c.Param("name"))
	if !ok {
		return
	}
	c.HTML(http.StatusOK, view.Edit, view.Page{
		Title:   "Edit Contact",
		Contact: contact,
		OldName: contact.Name,
	})
}

// updateContact validates the edit form and replaces name, email and phone of the contact with
// the submitted id. The new name may not belong to any contact other than the one with that id;
// oldName is only echoed back into the form.
//
//	> curl http://localhost:3000/contact --data "_method=PUT&id=1&oldName=Alita&name=Alita&email=alita@yahoo.com&phone=087854712611"
func (s *Service) updateContact(c *gin.Context) {
	var form model.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	ctx := c.Request.Context()

	err := s.validate.Contact(ctx, s.contacts, form, form.Id)
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		c.HTML(http.StatusUnprocessableEntity, view.Edit, view.Page{
			Title:   "Edit Contact",
			Contact: form.Contact(),
			OldName: form.OldName,
			Errors:  fieldErrors,
		})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	err = s.contacts.UpdateByID(ctx, form.Id, form.Contact())
	if errors.Is(err, store.ErrNotFound) {
		s.log.Warn().Str("id", form.Id).Msg("update of unknown contact")
		s.redirectToList(c, msgNotFound)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.redirectToList(c, msgUpdated)
}

// deleteContact removes the contact with the submitted name.
//
//	> curl http://localhost:3000/contact --header "X-HTTP-Method-Override: DELETE" --data "name=Alita"
func (s *Service) deleteContact(c *gin.Context) {
	name := c.PostForm("name")
	deleted, err := s.contacts.DeleteByName(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		s.redirectToList(c, msgNotFound)
		return
	}
	s.redirectToList(c, msgDeleted)
}

// findContactByName renders the detail page of the contact with the given name. A name that does
// not exist renders an empty record.
//
//	> curl http://localhost:3000/contact/Alita
func (s *Service) findContactByName(c *gin.Context) {
	contact, ok := s.lookup(c, c.Param("name"))
	if !ok {
		return
	}
	c.HTML(http.StatusOK, view.Detail, view.Page{
		Title:   "Contact Detail",
		Contact: contact,
	})
}

// lookup finds a contact by name. A missing contact yields the zero value. It returns false if
// the response has already been written because the store failed.
func (s *Service) lookup(c *gin.Context, name string) (model.Contact, bool) {
	contact, err := s.contacts.FindByName(c.Request.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		return model.Contact{}, true
	}
	if err != nil {
		s.fail(c, err)
		return model.Contact{}, false
	}
	return contact, true
}

func (s *Service) redirectToList(c *gin.Context, message string) {
	s.flash.Set(c, message)
	c.Redirect(http.StatusSeeOther, listURL)
}

// fail answers a persistence error with a generic server error.
func (s *Service) fail(c *gin.Context, err error) {
	s.log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("request failed")
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	c.Abort()
}
