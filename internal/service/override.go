package service

import (
	"net/http"
	"strings"
)

// methodOverrideHeader and methodOverrideField carry the intended method of a POST request.
const (
	methodOverrideHeader = "X-HTTP-Method-Override"
	methodOverrideField  = "_method"
)

var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms, which can only GET and POST, reach PUT and DELETE routes. A
// POST request is rewritten if it carries a _method query parameter, the X-HTTP-Method-Override
// header or a _method form field, checked in that order. It has to wrap the router because gin
// picks the route before any middleware runs.
//
// The form body is parsed here while the method is still POST; net/http does not parse bodies
// of DELETE requests.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if method := overrideMethod(r); method != "" {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	method := r.URL.Query().Get(methodOverrideField)
	if method == "" {
		method = r.Header.Get(methodOverrideHeader)
	}
	if isURLEncodedForm(r) && r.ParseForm() == nil {
		if method == "" {
			method = r.PostForm.Get(methodOverrideField)
		}
		r.PostForm.Del(methodOverrideField)
		r.Form.Del(methodOverrideField)
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if !overridableMethods[method] {
		return ""
	}
	return method
}

func isURLEncodedForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
