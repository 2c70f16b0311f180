package handler

import "net/http"

type redirectResponse struct {
	url    string
	status int
}

// Render sends a DataStar redirect script over SSE, or a regular
// Location redirect otherwise.
func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, rr.status)
	return nil
}

// Redirect responds 303 See Other, so a POST is followed by a GET.
func Redirect(url string) Response {
	return redirectResponse{url: url, status: http.StatusSeeOther}
}

func RedirectWithStatus(url string, status int) Response {
	return redirectResponse{url: url, status: status}
}
