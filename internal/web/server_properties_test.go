package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/JonMunkholm/strcalc/internal/core"
	. "github.com/onsi/gomega"
	"pgregory.net/rapid"
)

// inputRunes covers delimiters, headers, signs and junk.
var inputRunes = []rune("0123456789,\n-+;/.eE x|")

// TestCalculate_MatchesCore proves both transports report exactly what
// core.Calculate reports for the same input.
func TestCalculate_MatchesCore(t *testing.T) {
	s := newTestServer(t, nil)

	rapid.Check(t, func(rt *rapid.T) {
		g := NewWithT(rt)
		input := rapid.StringOfN(rapid.SampledFrom(inputRunes), 0, 40, -1).Draw(rt, "input")
		want := core.Calculate(input)

		body, err := json.Marshal(map[string]string{"input": input})
		g.Expect(err).NotTo(HaveOccurred())
		apiRec := postJSON(t, s, string(body), nil)

		if want.OK() {
			g.Expect(apiRec.Code).To(Equal(http.StatusOK))
			var resp CalculateResponse
			g.Expect(json.NewDecoder(apiRec.Body).Decode(&resp)).To(Succeed())
			g.Expect(resp.Display).To(Equal(want.Display()))
		} else {
			g.Expect(apiRec.Code).To(Equal(http.StatusUnprocessableEntity))
			var resp ErrorResponse
			g.Expect(json.NewDecoder(apiRec.Body).Decode(&resp)).To(Succeed())
			g.Expect(resp.Message).To(Equal(want.Err.Error()))
			g.Expect(resp.Kind).To(Equal(want.Kind().String()))
		}

		formRec := postForm(t, s, url.Values{"numbers": {input}}, true)
		g.Expect(formRec.Code).To(Equal(http.StatusOK))
		g.Expect(formRec.Body.String()).To(ContainSubstring(escapeHTML(want.String())))
	})
}

func escapeHTML(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `'`, "&#39;", `<`, "&lt;", `>`, "&gt;", `"`, "&#34;").Replace(s)
}
