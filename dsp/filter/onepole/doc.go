// Package onepole implements first-order IIR sections: a single pole (or a
// pole/zero pair) in Direct Form II Transposed.
//
// Coefficients are derived once from a cutoff and held until the section is
// explicitly re-tuned. Every tuning path clamps its driving parameter first,
// so the feedback coefficient always stays strictly inside the unit circle.
package onepole
