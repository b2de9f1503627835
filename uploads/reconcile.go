package uploads

// Input to a reconcile pass during a property update.
type Input struct {
	// Stored is the image list currently persisted on the record.
	Stored []string
	// Existing is the client-declared list of stored images to keep.
	// nil means the client did not send the field, in which case only
	// Removed drives removals.
	Existing []string
	// Removed is the client-declared list of images to drop. It wins
	// over Existing on conflict.
	Removed []string
	// Uploaded holds the generated names of newly saved files, in
	// upload order.
	Uploaded []string
}

// Result of a reconcile pass.
type Result struct {
	// Images is the new authoritative filename list: surviving stored
	// images in their original order, then uploads in upload order.
	Images []string
	// Deleted lists the filenames whose on-disk files should be
	// removed once the record has been persisted.
	Deleted []string
}

// Reconcile diffs the client-declared image sets against the stored
// list. A stored name is dropped when it appears in Removed, or when an
// Existing list was supplied and omits it.
func Reconcile(in Input) Result {
	drop := make(map[string]bool, len(in.Removed))
	for _, name := range in.Removed {
		drop[name] = true
	}

	if in.Existing != nil {
		keep := make(map[string]bool, len(in.Existing))
		for _, name := range in.Existing {
			keep[name] = true
		}
		for _, name := range in.Stored {
			if !keep[name] {
				drop[name] = true
			}
		}
	}

	uploaded := make(map[string]bool, len(in.Uploaded))
	for _, name := range in.Uploaded {
		uploaded[name] = true
	}

	var res Result
	seen := make(map[string]bool)
	for _, name := range in.Stored {
		if drop[name] || seen[name] {
			continue
		}
		seen[name] = true
		res.Images = append(res.Images, name)
	}
	for _, name := range in.Uploaded {
		if seen[name] {
			continue
		}
		seen[name] = true
		res.Images = append(res.Images, name)
	}
	if res.Images == nil {
		res.Images = []string{}
	}

	deleted := make(map[string]bool)
	for name := range drop {
		// Never delete a file that was just uploaded under the same name.
		if uploaded[name] || deleted[name] {
			continue
		}
		deleted[name] = true
	}
	// Preserve a stable order: removed names as declared, then
	// difference-detected ones in stored order.
	for _, name := range in.Removed {
		if deleted[name] {
			deleted[name] = false
			res.Deleted = append(res.Deleted, name)
		}
	}
	for _, name := range in.Stored {
		if deleted[name] {
			deleted[name] = false
			res.Deleted = append(res.Deleted, name)
		}
	}

	return res
}
