package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formbridge/internal/loader"
	"github.com/goliatone/go-formbridge/internal/prompt"
	"github.com/goliatone/go-formbridge/pkg/endpoint"
	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/gravity"
	"github.com/goliatone/go-formbridge/pkg/translate"
)

func main() {
	source := flag.String("source", "", "Gravity Forms form document path or URL")
	dir := flag.String("dir", "", "directory of form documents (used instead of -source)")
	id := flag.String("id", "", "form id to take from -dir")
	pick := flag.Bool("pick", false, "choose the form from -dir interactively")
	submission := flag.String("submission", "", "form.io payload file; prints the Gravity Forms submission body instead of the schema")
	sanitize := flag.Bool("sanitize", false, "strip unsafe markup from labels and descriptions")
	visibleOnly := flag.Bool("visible-only", false, "drop fields that are not visible")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	form, err := resolveForm(ctx, *source, *dir, *id, *pick)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}
	if *visibleOnly {
		if err := endpoint.VisibleFieldsOnly().Transform(ctx, &form); err != nil {
			log.Fatalf("Failed to filter fields: %v", err)
		}
	}

	var result any
	if *submission != "" {
		data, err := os.ReadFile(*submission)
		if err != nil {
			log.Fatalf("Failed to read submission: %v", err)
		}
		payload, err := translate.DecodePayload(data)
		if err != nil {
			log.Fatalf("Failed to decode submission: %v", err)
		}
		result = translate.TranslateSubmission(form, payload)
	} else {
		schema := translate.NewForward().Translate(form)
		if *sanitize {
			if err := translate.SanitizeMarkup().Decorate(&schema); err != nil {
				log.Fatalf("Failed to sanitize schema: %v", err)
			}
		}
		result = schema
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	if *output == "" {
		fmt.Println(string(encoded))
		return
	}
	if *pick && exists(*output) {
		overwrite, err := prompt.NewSurveyDriver().Confirm(ctx, prompt.ConfirmConfig{
			Message: fmt.Sprintf("%s exists. Overwrite?", *output),
		})
		if err != nil || !overwrite {
			fmt.Println("Nothing written")
			return
		}
	}
	if err := os.WriteFile(*output, append(encoded, '\n'), 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Output written to %s\n", *output)
}

func resolveForm(ctx context.Context, source, dir, id string, pick bool) (gravity.Form, error) {
	if dir == "" {
		if strings.TrimSpace(source) == "" {
			return gravity.Form{}, errors.New("-source or -dir is required")
		}
		src, err := gravity.ParseSource(source)
		if err != nil {
			return gravity.Form{}, err
		}
		l := loader.New(loader.Options{AllowHTTP: true, RequestTimeout: 15 * time.Second})
		return l.LoadForm(ctx, src)
	}

	store, err := formsource.LoadFS(os.DirFS(dir))
	if err != nil {
		return gravity.Form{}, err
	}
	switch {
	case id != "":
		return store.FetchForm(ctx, gravity.ID(id))
	case pick:
		return prompt.PickForm(ctx, prompt.NewSurveyDriver(), store.Forms())
	}

	forms := store.Forms()
	if len(forms) != 1 {
		return gravity.Form{}, fmt.Errorf("%s holds %d forms; pass -id or -pick", dir, len(forms))
	}
	return forms[0], nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
