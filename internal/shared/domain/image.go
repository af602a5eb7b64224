package domain

// Image es el objeto de valor compartido entre borradores y noticias.
type Image struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

func (i Image) IsZero() bool {
	return i.URL == "" && i.Description == "" && i.Author == ""
}
