// Package card renders portfolio project cards and implements their
// behaviour on a dom.Document: expand/collapse toggling and skill
// highlighting on hover.
//
// Rendering is done by a Renderer, which owns card id generation, so there
// is no package-level counter. Every render produces a fresh id of the form
// "card-<uuid>".
//
// # Markup contract
//
// Other code locates cards and skill tags through these attributes and
// classes only:
//
//	<article id="card-…" class="card card--expanded card--personal"
//	         data-size="Expanded" data-kind="Personal"
//	         data-short="…" data-long="…">
//	  <h3 class="card__category">…</h3>
//	  <p class="card__text">…</p>
//	  <ul class="card__skills">
//	    <li class="skill" data-skill="C%23">C#</li>
//	  </ul>
//	</article>
//
// data-skill holds sanitizer.NormalizeKey(label), so highlight lookups build
// their selector from the same key. Only the text variant matching data-size
// is shown in card__text; both variants travel as data attributes so Toggle
// can swap them in place.
package card
