package pdf

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"wholesale_portal_backend/internal/agent"
)

func sampleData() agent.DeliveryOrderData {
	email := "dealer@demo.com"
	return agent.BuildDeliveryOrder(agent.DeliveryOrderInput{
		OrderNumber: "DO20260309-0042",
		DealerName:  "Demo Wholesale Co.",
		DealerEmail: &email,
		Items: []agent.DeliveryOrderLine{
			{SKU: "WH-ELEC-001", ProductName: "Industrial LED Panel Light 60W", Quantity: 10, UnitPrice: decimal.RequireFromString("45")},
		},
	})
}

func TestHTMLIncludesTotalsAndQRCode(t *testing.T) {
	r := NewDeliveryOrderRenderer(nil, "Wholesale Portal")

	page, err := r.HTML(sampleData(), "https://portal.example.test/track/DO20260309-0042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(page)
	for _, want := range []string{"DO20260309-0042", "$450.00", "$36.00", "$486.00", "data:image/png;base64,", "dealer@demo.com"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered page", want)
		}
	}
}

func TestHTMLWithoutTrackingOmitsQRCode(t *testing.T) {
	r := NewDeliveryOrderRenderer(nil, "Wholesale Portal")
	page, err := r.HTML(sampleData(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(page), "data:image/png") {
		t.Fatal("expected no qr code without tracking url")
	}
}

func TestRenderPostsToGotenberg(t *testing.T) {
	var gotPath, gotUser, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotUser, _, _ = req.BasicAuth()
		_, params, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
		mr := multipart.NewReader(req.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			if part.FormName() == "files" {
				gotFile = part.FileName()
				_, _ = io.Copy(io.Discard, part)
			}
		}
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	r := NewDeliveryOrderRenderer(NewGotenbergClient(srv.URL+"/", "gotenberg", "secret"), "Wholesale Portal")
	out, err := r.Render(context.Background(), sampleData(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "%PDF-1.7" {
		t.Fatalf("unexpected pdf bytes %q", out)
	}
	if gotPath != "/forms/chromium/convert/html" || gotUser != "gotenberg" || gotFile != "index.html" {
		t.Fatalf("unexpected request path=%q user=%q file=%q", gotPath, gotUser, gotFile)
	}
}

func TestRenderSurfacesGotenbergErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "chromium crashed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewDeliveryOrderRenderer(NewGotenbergClient(srv.URL, "", ""), "Wholesale Portal")
	if _, err := r.Render(context.Background(), sampleData(), ""); err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected 503 error, got %v", err)
	}
}
