package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	UploadsUrlPath = "/uploads/"

	TemplatesLocalDir = "templates"

	TemplateLayout   = "layout.html"
	TemplateIndex    = "index.html"
	TemplateGallery  = "gallery.html"
	TemplateProjects = "projects.html"
	TemplateBlog     = "blog.html"
)
