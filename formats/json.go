package formats

import (
	"bytes"
	"encoding/json"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
	"github.com/arthur-debert/nanotasks/types"
)

// JSON renders the persisted record layout, indented. The output can be
// imported back as-is. The title is not part of the document.
var JSON = &ListFormat{
	Name:      "json",
	Extension: ".json",
	Render: func(_ string, tasks []types.Task) ([]byte, error) {
		data, err := storage.Encode(tasks)
		if err != nil {
			return nil, err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	},
}

func init() {
	mustRegister(JSON)
}
