package crossref

import (
	"testing"
)

func dp(parts ...int) *partedDate {
	return &partedDate{DateParts: [][]int{parts}}
}

func TestExtractYear_Precedence(t *testing.T) {
	tests := []struct {
		name string
		work crossrefWork
		want int
	}{
		{
			name: "print preferred",
			work: crossrefWork{
				PublishedPrint:  dp(2020),
				PublishedOnline: dp(2019),
				Issued:          dp(2018),
				Created:         dp(2017),
			},
			want: 2020,
		},
		{
			name: "online when no print",
			work: crossrefWork{
				PublishedOnline: dp(2019),
				Created:         dp(2017),
			},
			want: 2019,
		},
		{
			name: "issued when no print or online",
			work: crossrefWork{
				Issued:  dp(2018),
				Created: dp(2017),
			},
			want: 2018,
		},
		{
			name: "created as last resort",
			work: crossrefWork{Created: dp(2017)},
			want: 2017,
		},
		{
			name: "empty date-parts skipped",
			work: crossrefWork{
				PublishedPrint: &partedDate{},
				Issued:         dp(2018),
			},
			want: 2018,
		},
		{
			name: "no dates",
			work: crossrefWork{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractYear(tt.work); got != tt.want {
				t.Errorf("extractYear() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMapAuthors_DisplayName(t *testing.T) {
	authors := mapAuthors([]crossrefAuthor{
		{Given: "Jane", Family: "Smith"},
		{Name: "Some Consortium"},
		{Family: "Madonna"},
	})

	if len(authors) != 3 {
		t.Fatalf("expected 3 authors, got %d", len(authors))
	}
	if authors[0].Display != "Jane Smith" {
		t.Errorf("composed display = %q, want Jane Smith", authors[0].Display)
	}
	if authors[1].Display != "Some Consortium" {
		t.Errorf("display = %q, want composed name preserved", authors[1].Display)
	}
	if authors[2].Display != "Madonna" {
		t.Errorf("display = %q, want family only", authors[2].Display)
	}
}

func TestMapUpdates(t *testing.T) {
	updates := mapUpdates([]crossrefUpdate{
		{
			DOI:     "10.1234/Notice",
			Type:    "retraction",
			Label:   "Retraction",
			Updated: dp(2021, 6, 1),
		},
		{Type: "correction", Updated: dp(2020)},
	})

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Type != "retraction" || updates[0].Label != "Retraction" {
		t.Errorf("update = %+v", updates[0])
	}
	if updates[0].Date != "2021-06-01" {
		t.Errorf("date = %q, want 2021-06-01", updates[0].Date)
	}
	if updates[0].URL != "https://doi.org/10.1234/notice" {
		t.Errorf("url = %q", updates[0].URL)
	}
	if updates[1].Date != "2020" {
		t.Errorf("year-only date = %q, want 2020", updates[1].Date)
	}
	if updates[1].URL != "" {
		t.Errorf("url = %q, want empty when notice has no DOI", updates[1].URL)
	}
}

func TestMapWork_EmptyPayload(t *testing.T) {
	work := mapWork(crossrefWork{})
	if work.Title != "" || work.Journal != "" || work.Year != 0 {
		t.Errorf("empty payload mapped to %+v", work)
	}
	if len(work.Authors) != 0 {
		t.Errorf("expected no authors, got %d", len(work.Authors))
	}
}
