package orchestrator

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// relaxedConf parses leniently. Inputs that reach the fallback pass are often
// the ones strict validation would reject.
func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// writeConf serializes rebuilt documents with a classic cross-reference table
// and no object streams, keeping the file structure human-readable.
func writeConf() *model.Configuration {
	conf := relaxedConf()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}
