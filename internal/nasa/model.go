package nasa

// Envelope is the body returned by the search endpoint.
type Envelope struct {
	Collection Collection `json:"collection"`
}

type Collection struct {
	Items []RawItem `json:"items"`
	Links []Link    `json:"links"`
}

type RawItem struct {
	Data  []Record `json:"data"`
	Links []Link   `json:"links"`
}

type Record struct {
	NasaID      string `json:"nasa_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DateCreated string `json:"date_created"`
}

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

func findLink(links []Link, rel string) *Link {
	for i := range links {
		if links[i].Rel == rel {
			return &links[i]
		}
	}
	return nil
}
