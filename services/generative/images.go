package generative

import (
	"net/url"
	"strconv"
	"strings"
)

// styleHints vary the prompt per variant so the images differ in more than noise.
var styleHints = []string{
	"studio product photograph, soft light",
	"lifestyle shot in an Indian home",
	"close-up of the handcrafted detail",
	"flat lay on handloom fabric",
}

// VariantPrompt returns the prompt used for variant i of description.
func VariantPrompt(description string, i int) string {
	description = strings.TrimSpace(description)
	return description + ", " + styleHints[i%len(styleHints)]
}

// ImageURLBuilder builds seed-bearing image request URLs.
type ImageURLBuilder struct {
	BaseURL string
	Width   int
	Height  int
	Model   string
}

// Build is deterministic: the same prompt and seed always yield the same bytes.
func (b ImageURLBuilder) Build(prompt string, seed int64) string {
	q := url.Values{}
	q.Set("width", strconv.Itoa(b.Width))
	q.Set("height", strconv.Itoa(b.Height))
	q.Set("seed", strconv.FormatInt(seed, 10))
	q.Set("model", b.Model)
	q.Set("nologo", "true")

	return strings.TrimRight(b.BaseURL, "/") + "/prompt/" + url.PathEscape(prompt) + "?" + q.Encode()
}
