package catalogs_test

import (
	"fmt"

	"github.com/agentstation/gallery/pkg/catalogs"
)

// Example demonstrates building a collection and resolving entry routes.
func Example() {
	collection := catalogs.NewCollection(catalogs.KindModel, []*catalogs.Entry{
		{Name: "stardist", Tasks: catalogs.NewTasks(catalogs.TaskSegmentation)},
		{Name: "cell pose", Tasks: catalogs.NewTasks()},
	})

	for _, e := range collection.Entries() {
		fmt.Println(e.Name, catalogs.KindModel.DetailPath(e.Name))
	}

	// Output:
	// stardist /model/stardist
	// cell pose /model/cell%20pose
}

// ExampleParseKind shows the accepted collection spellings.
func ExampleParseKind() {
	for _, s := range []string{"models", "data-sources", "project"} {
		kind, err := catalogs.ParseKind(s)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(kind, kind.GridPath())
	}

	// Output:
	// model /model-grid
	// datasource /datasource-grid
	// project /project-grid
}

// ExampleThumbnailsFromAssetKeys converts asset-pipeline keys into a
// name-keyed thumbnail lookup.
func ExampleThumbnailsFromAssetKeys() {
	thumbs := catalogs.ThumbnailsFromAssetKeys(map[string]catalogs.ImageRef{
		"./stardist.jpg": "/static/stardist.3f2a.jpg",
		"README.md":      "/static/readme",
	})

	ref, ok := thumbs.Lookup("stardist")
	fmt.Println(ref, ok, len(thumbs))

	// Output:
	// /static/stardist.3f2a.jpg true 1
}
