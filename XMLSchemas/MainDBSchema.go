package xmlschemas

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Thesis struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OaiID         string             `bson:"oai_id"`
	Datestamp     string             `bson:"datestamp"`
	SetSpecs      []string           `bson:"set_specs"`
	SetEtab       string             `bson:"set_etab"`
	SetDDC        string             `bson:"set_ddc"`
	IsDiffusable  bool               `bson:"is_diffusable"`
	Title         string             `bson:"title"`
	Subject       string             `bson:"subject"`
	DescriptionFr string             `bson:"description_fr"`
	DescriptionEn string             `bson:"description_en"`
	Language      string             `bson:"language"`
	Identifier    string             `bson:"identifier"`
	Creator       string             `bson:"creator"`
	Date          string             `bson:"date"`
	Year          string             `bson:"year"`
	Rights        string             `bson:"rights"`
	Contributors  []string           `bson:"contributors"`
	RunID         string             `bson:"run_id"`
}
