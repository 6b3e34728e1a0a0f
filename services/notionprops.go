package services

import (
	"time"

	"github.com/jomei/notionapi"
)

// Accessors for Notion's type-tagged property encoding. Each one tolerates a
// missing or differently-typed property and returns the zero value, so record
// parsing never panics on a partially filled page.

func getTitle(props notionapi.Properties, name string) string {
	prop, ok := props[name].(*notionapi.TitleProperty)
	if !ok {
		return ""
	}
	return joinRichText(prop.Title)
}

func getRichText(props notionapi.Properties, name string) string {
	prop, ok := props[name].(*notionapi.RichTextProperty)
	if !ok {
		return ""
	}
	return joinRichText(prop.RichText)
}

func joinRichText(parts []notionapi.RichText) string {
	var text string
	for _, part := range parts {
		text += part.PlainText
	}
	return text
}

func getSelect(props notionapi.Properties, name string) string {
	prop, ok := props[name].(*notionapi.SelectProperty)
	if !ok {
		return ""
	}
	return prop.Select.Name
}

func getMultiSelect(props notionapi.Properties, name string) []string {
	prop, ok := props[name].(*notionapi.MultiSelectProperty)
	if !ok {
		return []string{}
	}
	values := []string{}
	for _, option := range prop.MultiSelect {
		values = append(values, option.Name)
	}
	return values
}

func getCheckbox(props notionapi.Properties, name string) bool {
	prop, ok := props[name].(*notionapi.CheckboxProperty)
	if !ok {
		return false
	}
	return prop.Checkbox
}

func getNumber(props notionapi.Properties, name string) float64 {
	prop, ok := props[name].(*notionapi.NumberProperty)
	if !ok {
		return 0
	}
	return prop.Number
}

func getDate(props notionapi.Properties, name string) string {
	prop, ok := props[name].(*notionapi.DateProperty)
	if !ok || prop.Date == nil || prop.Date.Start == nil {
		return ""
	}
	return time.Time(*prop.Date.Start).Format("2006-01-02")
}

func getURL(props notionapi.Properties, name string) string {
	prop, ok := props[name].(*notionapi.URLProperty)
	if !ok {
		return ""
	}
	return prop.URL
}

func getFiles(props notionapi.Properties, name string) []string {
	prop, ok := props[name].(*notionapi.FilesProperty)
	if !ok {
		return []string{}
	}
	urls := []string{}
	for _, file := range prop.Files {
		if file.File != nil && file.File.URL != "" {
			urls = append(urls, file.File.URL)
		} else if file.External != nil && file.External.URL != "" {
			urls = append(urls, file.External.URL)
		}
	}
	return urls
}

func getRelation(props notionapi.Properties, name string) []string {
	prop, ok := props[name].(*notionapi.RelationProperty)
	if !ok {
		return []string{}
	}
	ids := []string{}
	for _, rel := range prop.Relation {
		ids = append(ids, string(rel.ID))
	}
	return ids
}

func titleValue(content string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func richTextValue(content string) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func selectValue(name string) *notionapi.SelectProperty {
	return &notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

func relationValue(ids ...string) *notionapi.RelationProperty {
	relations := []notionapi.Relation{}
	for _, id := range ids {
		relations = append(relations, notionapi.Relation{ID: notionapi.PageID(id)})
	}
	return &notionapi.RelationProperty{Relation: relations}
}
