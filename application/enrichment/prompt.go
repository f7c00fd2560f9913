package enrichment

import (
	"encoding/json"
	"strings"

	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"
)

// BuildPrompt constructs the instruction sent to the suggestion provider.
// It carries the owner's directory tree as structural context plus the
// current partial record, and constrains the provider to fill only the gaps.
func BuildPrompt(tree pathtree.Tree, bm bookmark.Bookmark) string {
	treeJSON, err := json.Marshal(tree)
	if err != nil {
		treeJSON = []byte("{}")
	}
	recordJSON, err := json.Marshal(bm.Fields())
	if err != nil {
		recordJSON = []byte("{}")
	}

	url := bm.URL
	if url == "" {
		url = "emptyURL"
	}

	var b strings.Builder
	b.WriteString("Return only a json object with structure: { \"path\": str, \"tags\": list, \"notes\": str }. ")
	b.WriteString("This user has bookmarks stored in the following path structures:\n")
	b.Write(treeJSON)
	b.WriteString("\nNote that an empty dict value indicates the key was the end of the path and nothing should be nested within. ")
	b.WriteString("If the user has very few directories to infer their preferred structure, prefer to define the path under a very general directory, followed by a more specific subdirectory and a specific name. ")
	b.WriteString("This looks like 'a/b/c' and should categorize the bookmark intuitively. ")
	b.WriteString("Gather some information about this url: '")
	b.WriteString(url)
	b.WriteString("' to infer what the user is using this site for and autofill the 'path' field with the most logical path as a string. ")
	b.WriteString("Autofill the 'tags' field with about five keywords that relate to the site's purpose. ")
	b.WriteString("Autofill the 'notes' field with your best guess about the user's purpose for using the site. ")
	b.WriteString("'notes' should be written from the user's perspective. ")
	b.WriteString("If there is already a path present, do not change it. ")
	b.WriteString("If there are already tags present, do not remove them, but add more if necessary. ")
	b.WriteString("The current state of this object follows: ")
	b.Write(recordJSON)

	return b.String()
}
