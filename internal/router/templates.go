package router

import (
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// loadTemplates assembles each view with the shared layouts, keyed the way
// the handlers call them ("blog/index.html" etc).
func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Blog
	r.AddFromFilesFuncs("blog/index.html", funcMap, assemble(templatesDir+"/views/blog/index.html")...)
	r.AddFromFilesFuncs("blog/create.html", funcMap, assemble(templatesDir+"/views/blog/create.html")...)
	r.AddFromFilesFuncs("blog/update.html", funcMap, assemble(templatesDir+"/views/blog/update.html")...)
	r.AddFromFilesFuncs("blog/view.html", funcMap, assemble(templatesDir+"/views/blog/view.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
