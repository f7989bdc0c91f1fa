package output

import (
	"encoding/json"
	"os"

	"k8s-readiness-gate/internal/model"
)

func WriteJSON(path string, r *model.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
