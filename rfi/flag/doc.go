// Package flag detects radio-frequency interference in a masked visibility
// grid and masks it in place.
//
// Three detectors are provided, in increasing order of cost:
//
//   - [Frequency] masks channels whose time-averaged power is an outlier.
//   - [Time] masks time samples whose frequency-averaged power is an
//     outlier, widened by a configurable window.
//   - [Variance] masks the single channel with the most excessive variance.
//
// Frequency and Variance are meant to be repeated until they flag nothing;
// [FrequencyLoop] and [VarianceLoop] wrap them in [rfi.Converge]. Every
// detector recomputes its statistics from the current mask on each call.
package flag
