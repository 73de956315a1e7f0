package formats

import (
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

type yamlTask struct {
	ID        string `yaml:"id"`
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
	Date      string `yaml:"date,omitempty"`
	Time      string `yaml:"time,omitempty"`
	CreatedAt string `yaml:"createdAt,omitempty"`
}

type yamlDocument struct {
	Title string     `yaml:"title,omitempty"`
	Tasks []yamlTask `yaml:"tasks"`
}

// YAML renders the list as a YAML document with a title and a tasks sequence
var YAML = &ListFormat{
	Name:      "yaml",
	Extension: ".yaml",
	Render: func(title string, tasks []types.Task) ([]byte, error) {
		doc := yamlDocument{Title: title, Tasks: make([]yamlTask, 0, len(tasks))}
		for _, t := range tasks {
			doc.Tasks = append(doc.Tasks, yamlTask{
				ID:        t.ID,
				Text:      t.Text,
				Completed: t.Completed,
				Date:      t.Date,
				Time:      t.Time,
				CreatedAt: storage.FormatTimestamp(t.CreatedAt),
			})
		}
		return yaml.Marshal(doc)
	},
}

func init() {
	mustRegister(YAML)
}
