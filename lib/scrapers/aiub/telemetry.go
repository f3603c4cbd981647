package aiub

import (
	"aiubportal-backend/lib/restyutil"
	"aiubportal-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("aiubportal.lib.scrapers.aiub")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

// proxies writes to the package-level output so it can be swapped in
// after clients have been constructed.
type proxyOutput struct{}

func (proxyOutput) Write(id string, contents string) {
	if restyInstrumentOutput != nil {
		restyInstrumentOutput.Write(id, contents)
	}
}
