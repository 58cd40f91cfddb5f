package tvmaze

// Wire shapes for the TVMaze API. Nullable fields on the wire decode into
// pointers or zero values; identity for every record is its integer ID.

type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

type Rating struct {
	Average *float64 `json:"average"`
}

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Network struct {
	Name    string  `json:"name"`
	Country Country `json:"country"`
}

type Schedule struct {
	Time string   `json:"time"`
	Days []string `json:"days"`
}

type Series struct {
	ID        int       `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Image     *Image    `json:"image,omitempty"`
	Genres    []string  `json:"genres,omitempty"`
	Premiered string    `json:"premiered,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Schedule  *Schedule `json:"schedule,omitempty"`
	Status    string    `json:"status,omitempty"`
	Rating    *Rating   `json:"rating,omitempty"`
	Network   *Network  `json:"network,omitempty"`
}

type Episode struct {
	ID      int    `json:"id" validate:"required"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Summary string `json:"summary,omitempty"`
	// SummaryPlain is filled in client-side once markup has been stripped.
	SummaryPlain string `json:"summary_plain,omitempty"`
	Image        *Image `json:"image,omitempty"`
	Airdate      string `json:"airdate,omitempty"`
	Runtime      int    `json:"runtime,omitempty"`
}

type Person struct {
	ID       int      `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Image    *Image   `json:"image,omitempty"`
	Country  *Country `json:"country,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
	Deathday string   `json:"deathday,omitempty"`
	Gender   string   `json:"gender,omitempty"`
}

type Link struct {
	Href string `json:"href"`
	Name string `json:"name"`
}

type CreditLinks struct {
	Show      Link `json:"show"`
	Character Link `json:"character"`
}

// CastCredit links a person to a show and character. The catalog does not
// deduplicate credits and neither do we.
type CastCredit struct {
	Voice bool        `json:"voice"`
	Links CreditLinks `json:"_links"`
}

// The search endpoints wrap their hits; we unwrap before returning.

type seriesSearchResult struct {
	Show Series `json:"show"`
}

type personSearchResult struct {
	Score  float64 `json:"score"`
	Person Person  `json:"person"`
}
