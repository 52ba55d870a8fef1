// Package rename proposes canonical names for the album directories under a
// base directory and applies the approved ones.
//
//	r := rename.NewDefaultRenamer(4, onProgress)
//	plan, err := r.Plan(ctx, "/music")
//	for _, e := range plan.Candidates {
//	    fmt.Println(e.Old, "->", e.New)
//	}
//	res, err := r.Apply(ctx, plan, nil)
package rename
