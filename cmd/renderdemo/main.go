package main

// Compose a resume document as Markdown:
//   go run ./cmd/renderdemo -in resume.json -author "Ada Lovelace"
// Without -in a built-in sample is used. Validation errors go to stderr.

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"career-backend/resume/model"
	"career-backend/resume/render"
)

func main() {
	inPath := flag.String("in", "", "path to a JSON resume document")
	author := flag.String("author", "Ada Lovelace", "name shown in the header")
	outPath := flag.String("out", "", "write Markdown here instead of stdout")
	flag.Parse()

	doc := sampleDocument()
	if *inPath != "" {
		loaded, err := loadDocument(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
			os.Exit(1)
		}
		doc = loaded
	}

	res := doc.Validate()
	for _, path := range res.Paths() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, res.Errors[path])
	}

	md := render.Compose(doc, *author)
	if *outPath == "" {
		fmt.Println(md)
	} else if err := os.WriteFile(*outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if !res.OK() {
		os.Exit(2)
	}
}

func loadDocument(path string) (model.ResumeDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeDocument{}, err
	}
	var doc model.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.ResumeDocument{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func sampleDocument() model.ResumeDocument {
	return model.ResumeDocument{
		ContactInfo: model.ContactInfo{
			Email:    "ada@example.com",
			Mobile:   "+44 20 7946 0000",
			Location: "London, UK",
			LinkedIn: "https://www.linkedin.com/in/ada",
			GitHub:   "https://github.com/ada",
		},
		Summary: "Engineer focused on analytical engines and the programs that drive them.",
		Skills:  []string{"Go", "PostgreSQL", "Distributed systems"},
		Experience: []model.Entry{{
			Title:        "Lead Engineer",
			Organization: "Analytical Engines Ltd",
			StartDate:    "2019-03",
			Current:      true,
			Description:  "- Designed the instruction pipeline\n- Mentored four engineers",
		}},
		Education: []model.Entry{{
			Title:        "BSc Mathematics",
			Organization: "University of London",
			StartDate:    "2012-09",
			EndDate:      "2015-06",
			Description:  "First class honours.",
		}},
	}
}
