// Package stdlib carries the bootstrap library: ordinary user-level
// source evaluated into the root environment when an interpreter is
// created. Everything here is expressible with the core special forms
// and the builtins; in particular quasiquote is a macro, not
// evaluator machinery, and the variadic arithmetic names are rebinds
// over the 2-ary builtins.
package stdlib

// Source is evaluated top to bottom; definitions may only use what was
// defined above them.
const Source = `
; Folds and list basics
(define (foldl proc init list)
  (if list
      (foldl proc (proc init (car list)) (cdr list))
      init))

(define (foldr proc init list)
  (if list
      (proc (car list) (foldr proc init (cdr list)))
      init))

(define (list . items) items)

(define (reverse list)
  (foldl (lambda (a x) (cons x a)) nil list))

(define (unary-map proc list)
  (foldr (lambda (x rest) (cons (proc x) rest)) nil list))

(define (map proc . arg-lists)
  (if (car arg-lists)
      (cons (apply proc (unary-map car arg-lists))
            (apply map (cons proc (unary-map cdr arg-lists))))
      nil))

(define (append a b) (foldr cons b a))

(define (caar x) (car (car x)))
(define (cadr x) (car (cdr x)))
(define (cddr x) (cdr (cdr x)))

(define (null? x) (eq? x nil))
(define (not x) (if x nil t))

; Variadic arithmetic over the 2-ary primitives. The primitives stay
; reachable under binary- names.
(define binary+ +)
(define binary- -)
(define binary* *)
(define binary/ /)

(define (+ . xs) (foldl binary+ 0 xs))
(define (* . xs) (foldl binary* 1 xs))

(define (- first . rest)
  (if rest
      (foldl binary- first rest)
      (binary- 0 first)))

(define (/ first . rest)
  (if rest
      (foldl binary/ first rest)
      (binary/ 1 first)))

(define (abs x) (if (< x 0) (- 0 x) x))

; Core macros
(defmacro (begin . body)
  (cons (cons 'lambda (cons nil body)) nil))

(defmacro (quasiquote x)
  (if (pair? x)
      (if (eq? (car x) 'unquote)
          (cadr x)
          (if (if (pair? (car x)) (eq? (caar x) 'unquote-splicing) nil)
              (list 'append
                    (cadr (car x))
                    (list 'quasiquote (cdr x)))
              (list 'cons
                    (list 'quasiquote (car x))
                    (list 'quasiquote (cdr x)))))
      (list 'quote x)))

(defmacro (when test . body)
  (list 'if test (cons 'begin body) nil))

(defmacro (unless test . body)
  (list 'if test nil (cons 'begin body)))

(defmacro (and . terms)
  (if terms
      (if (cdr terms)
          (list 'if (car terms) (cons 'and (cdr terms)) nil)
          (car terms))
      t))

(defmacro (or . terms)
  (if terms
      (if (cdr terms)
          (list 'if (car terms) t (cons 'or (cdr terms)))
          (car terms))
      nil))

(defmacro (let defs . body)
  (cons (cons 'lambda (cons (unary-map car defs) body))
        (unary-map cadr defs)))
`
