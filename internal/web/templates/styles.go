package templates

import (
	"strings"

	"github.com/JonMunkholm/KosherDir/internal/palette"
)

const baseStyles = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",Arial,sans-serif;background:#f9fafb;color:#111827}
.container{max-width:80rem;margin:0 auto;padding:2rem 1rem}
.panel{background:#fff;border:1px solid #e5e7eb;border-radius:1rem;padding:1.5rem;margin-bottom:1.5rem;box-shadow:0 1px 2px rgba(0,0,0,.05)}
.header{text-align:center}
.header h1{font-size:2.25rem;font-weight:800;margin:0 0 .5rem}
.muted{color:#4b5563}
.small{font-size:.875rem;color:#6b7280}
.banner-loading{color:#374151;font-size:1.125rem}
.banner-error{background:#fef2f2;color:#b91c1c;border:1px solid #fecaca;padding:1rem;border-radius:.75rem;margin-top:1rem}
.row{display:flex;flex-wrap:wrap;gap:.5rem;align-items:center}
.between{justify-content:space-between}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(16rem,1fr));gap:1rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(18rem,1fr));gap:1.5rem}
label{display:block;font-size:.875rem;font-weight:500;color:#374151;margin-bottom:.25rem}
select,input[type=text]{width:100%;padding:.75rem;border:1px solid #d1d5db;border-radius:.5rem}
button,.button{background:#6b7280;color:#fff;border:0;padding:.5rem 1rem;border-radius:.5rem;cursor:pointer;text-decoration:none;font-size:.875rem}
.primary{background:#9333ea}
.tab{background:#fff;color:#374151;border:1px solid #d1d5db;border-radius:9999px;padding:.25rem .75rem}
.tab.active{background:#9333ea;color:#fff;border-color:#9333ea}
.inline{display:inline}
.count{text-align:center;font-size:1.125rem;font-weight:500}
.count b{color:#7e22ce}
.card{background:#fff;border:1px solid #f3f4f6;border-radius:1rem;padding:1.5rem;box-shadow:0 4px 6px rgba(0,0,0,.08)}
.card h3{font-size:1.25rem;font-weight:700;margin:0;color:#1f2937}
.badge{display:inline-block;padding:.25rem .625rem;border-radius:9999px;font-size:.75rem;color:#fff;white-space:nowrap}
.chip{display:inline-block;padding:.25rem .625rem;border-radius:9999px;font-size:.75rem;background:#f3f4f6;color:#1f2937;border:1px solid #e5e7eb}
.tag{display:inline-block;color:#fff;font-size:.75rem;padding:.25rem .75rem;border-radius:9999px;margin:0 0 .25rem .25rem}
.empty{text-align:center;padding:4rem 1rem}
.empty h3{font-size:1.5rem;font-weight:500;margin:0 0 .5rem}
.alert{background:#fef2f2;border:1px solid #fecaca;color:#991b1b;padding:1rem;border-radius:.75rem}
`

// stylesheet returns the page CSS including one bg-<token> class per palette color.
func stylesheet() string {
	var b strings.Builder
	b.WriteString(baseStyles)
	for _, tok := range palette.Tokens() {
		b.WriteString(".bg-")
		b.WriteString(tok)
		b.WriteString("{background:")
		b.WriteString(palette.Hex(tok))
		b.WriteString("}\n")
	}
	return b.String()
}
