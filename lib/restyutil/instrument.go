package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// InstrumentOutput receives one rendered HTTP exchange per request
// made by an instrumented client.
type InstrumentOutput interface {
	Write(id string, contents string)
}

// InstrumentClient dumps every request/response pair the client makes
// to output. `output` can be nil, in which case this is a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&idcounter, 1)
		output.Write(
			fmt.Sprintf("%03d_%s", id, res.Request.Method),
			formatHttpMessage(res),
		)
		return nil
	})
}
