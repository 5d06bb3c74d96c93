// Command btsdump inspects .bts record files.
//
//	btsdump explain temp.bts
//	btsdump read --from 2 --upto 7 --as FLOAT temp.bts
//	btsdump timebase --lower 80 --upper 300 temp.bts
//	btsdump digest a.bts b.bts
package main

import (
	"fmt"
	"os"
)

func main() {
	wrapper := NewWrapper()
	if err := wrapper.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "btsdump:", err)
		os.Exit(1)
	}
}
