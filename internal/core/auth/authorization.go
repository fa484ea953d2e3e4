package auth

import "github.com/artpar/portfolio/internal/core/domain"

// CanViewBlog reports whether the caller may read a blog post.
// Drafts are visible to authenticated admins only.
func CanViewBlog(ctx Context, b domain.Blog) bool {
	return b.Published || ctx.Authenticated
}

// CanEdit reports whether the caller may create, modify or delete records.
// Every admin may edit every record.
func CanEdit(ctx Context) bool {
	return ctx.Authenticated
}
