package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// client drives the HTML form endpoints of a running service and measures their latency.
type client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Usage example on the command line:
// > go run main.go -url=http://localhost:3000 -sizes=100,500,1000
func main() {
	urlPtr := flag.String("url", "http://localhost:3000", "the base URL of the service")
	sizesPtr := flag.String("sizes", "100,500,1000,5000", "comma separated numbers of contacts per round")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	c := &client{
		baseURL: strings.TrimSuffix(*urlPtr, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			// Successful writes answer with a redirect to the list, which is not part of the
			// measured operation.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log,
	}

	var sizes []int
	for _, s := range strings.Split(*sizesPtr, ",") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err != nil || n < 1 {
			log.Fatal().Str("size", s).Msg("invalid size")
		}
		sizes = append(sizes, n)
	}

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	run := time.Now().UnixNano()
	for round, loops := range sizes {
		names := make([]string, 0, loops)
		for i := 0; i < loops; i++ {
			names = append(names, fmt.Sprintf("Load %d-%d-%d", run, round, i))
		}
		fmt.Printf("%10d", loops)
		ids := make(map[string]string, loops)
		c.measure(names, func(name string) {
			c.send(http.MethodPost, "/contact", contactForm(name))
		})
		for _, name := range names {
			ids[name] = c.findId(name)
		}
		shuffle(names)
		c.measure(names, func(name string) {
			form := contactForm(name)
			form.Set("_method", http.MethodPut)
			form.Set("id", ids[name])
			form.Set("oldName", name)
			form.Set("email", "updated@example.com")
			c.send(http.MethodPost, "/contact", form)
		})
		shuffle(names)
		c.measure(names, func(name string) {
			c.send(http.MethodGet, "/contact/"+url.PathEscape(name), nil)
		})
		shuffle(names)
		c.measure(names, func(name string) {
			c.send(http.MethodPost, "/contact", url.Values{"_method": {http.MethodDelete}, "name": {name}})
		})
		fmt.Println()
	}
}

// measure calls f for each name and prints the average duration in microseconds.
func (c *client) measure(names []string, f func(name string)) {
	before := time.Now()
	for _, name := range names {
		f(name)
	}
	fmt.Printf("%10d", time.Since(before).Microseconds()/int64(len(names)))
}

// findId reads the id of a contact from the hidden field of its edit form.
func (c *client) findId(name string) string {
	body := c.send(http.MethodGet, "/contact/edit/"+url.PathEscape(name), nil)
	const marker = `name="id" value="`
	start := strings.Index(body, marker)
	if start < 0 {
		c.log.Fatal().Str("name", name).Msg("edit form without id")
	}
	rest := body[start+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}

func (c *client) send(method string, path string, form url.Values) string {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		c.log.Fatal().Err(err).Msg("could not create request")
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Fatal().Err(err).Msg("error making http request")
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		c.log.Fatal().Err(err).Msg("could not read response body")
	}
	if res.StatusCode >= http.StatusBadRequest {
		c.log.Fatal().Int("status", res.StatusCode).Str("method", method).Str("path", path).Msg("request failed")
	}
	return string(resBody)
}

func contactForm(name string) url.Values {
	return url.Values{
		"name":  {name},
		"email": {"load@example.com"},
		"phone": {fmt.Sprintf("0812%08d", rand.Intn(100000000))},
	}
}

func shuffle(names []string) {
	rand.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
}
