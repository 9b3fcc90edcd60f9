// Package mdfs implements multidimensional feature selection over
// discretized data.
//
// Every D-tuple of variables is scored against a binary decision. For each
// tuple and each discretization trial the engine builds the joint histogram
// of the tuple's bucket codes per class, computes its information gain, and
// for every variable in the tuple subtracts the gain of the histogram with
// that variable's axis summed out. The difference measures what the variable
// adds given the rest of the tuple, so variables that are only informative in
// combination are found.
//
// The trials of one tuple are scored in lane-parallel chunks on the backend
// selected with WithLanes, fanned out over a worker pool, then reduced to one
// score per variable with Config.Reduce and folded into the Output.
//
//	m := mdfs.NewMatrix(variables, trials, objects)
//	// fill m.Data and m.Decision
//	cfg := mdfs.DefaultConfig()
//	cfg.Discretizations = trials
//	out, err := mdfs.Run(cfg, m)
//	if err != nil {
//	    return err
//	}
//	for _, v := range mdfs.Rank(out.Gains()) {
//	    fmt.Println(v, out.Gains()[v])
//	}
package mdfs
